package service

import (
	"DocVault/config"
	"DocVault/model"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// HookSet groups the policies a deployment may want to swap out: event
// message wording, storage color thresholds, upload path naming, and the
// share permission rule.
type HookSet interface {
	CanShareFolder(user *model.User, folder *model.Folder) bool
	StorageColor(percentage int) (string, error)
	FileUploadPath(originalFilename string) string
	AlreadyExistsMessage(name string) string
	FolderCreatedMessage(user *model.User, folder *model.Folder) string
	DocumentCreatedMessage(user *model.User, document *model.Document) string
	FolderSharedMessage(user *model.User, folder *model.Folder) string
	FolderDeletedMessage(user *model.User, folder *model.Folder) string
	DocumentDeletedMessage(user *model.User, document *model.Document) string
}

type DefaultHookSet struct{}

// CanShareFolder restricts sharing to top-level folders owned by the user.
// Sharing below the root would fragment the denormalized shared state.
func (DefaultHookSet) CanShareFolder(user *model.User, folder *model.Folder) bool {
	return folder.ParentID == nil && folder.AuthorID == user.ID
}

// StorageColor maps a usage percentage onto a display band.
func (DefaultHookSet) StorageColor(percentage int) (string, error) {
	switch {
	case percentage >= 0 && percentage < 60:
		return "ok", nil
	case percentage >= 60 && percentage < 90:
		return "warning", nil
	case percentage >= 90 && percentage <= 100:
		return "critical", nil
	}
	return "", fmt.Errorf("%w: %d", ErrRange, percentage)
}

// FileUploadPath builds the blob path for an upload: a random token with
// the original extension, under a fixed prefix. The human filename is kept
// as metadata only and never reaches the storage path.
func (DefaultHookSet) FileUploadPath(originalFilename string) string {
	name := uuid.NewString()
	if ext := path.Ext(originalFilename); ext != "" && len(ext) <= 16 {
		name += ext
	}
	return config.AppConfig.DocumentPrefix + "/" + name
}

func (DefaultHookSet) AlreadyExistsMessage(name string) string {
	return fmt.Sprintf("%s already exists.", name)
}

func (DefaultHookSet) FolderCreatedMessage(user *model.User, folder *model.Folder) string {
	return fmt.Sprintf("Folder %s was created by %s", folder.Name, user.DisplayName())
}

func (DefaultHookSet) DocumentCreatedMessage(user *model.User, document *model.Document) string {
	return fmt.Sprintf("Document %s was created by %s", document.Name, user.DisplayName())
}

func (DefaultHookSet) FolderSharedMessage(user *model.User, folder *model.Folder) string {
	return fmt.Sprintf("Folder %s is now shared with %s", folder.Name, user.DisplayName())
}

func (DefaultHookSet) FolderDeletedMessage(user *model.User, folder *model.Folder) string {
	return fmt.Sprintf("Folder %s has been deleted by %s", folder.Name, user.DisplayName())
}

func (DefaultHookSet) DocumentDeletedMessage(user *model.User, document *model.Document) string {
	return fmt.Sprintf("Document %s has been deleted by %s", document.Name, user.DisplayName())
}

var hooks HookSet = DefaultHookSet{}

// UseHookSet installs the policy strategy. Called once during startup;
// callers that never call it get the defaults.
func UseHookSet(hs HookSet) {
	if hs != nil {
		hooks = hs
	}
}

// Hooks returns the installed policy strategy.
func Hooks() HookSet {
	return hooks
}
