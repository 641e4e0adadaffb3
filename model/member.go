package model

const (
	KindFolder   = "folder"
	KindDocument = "document"
)

// Member is the common shape of folder listings: folders and documents
// interleave in a single name-sorted sequence.
type Member interface {
	MemberID() uint64
	MemberName() string
	MemberKind() string
	OwnerID() uint64
}
