package handler

import (
	"DocVault/internal/dto"
	"DocVault/internal/mq"
	"DocVault/internal/service"
	"DocVault/model"
	"DocVault/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUser loads the authenticated user for handlers that need more
// than the ID from the token claims.
func currentUser(c *gin.Context) (*model.User, error) {
	userID := c.MustGet("user_id").(uint64)
	return service.FindUserById(userID)
}

func memberItems(members []model.Member) []dto.MemberItem {
	items := make([]dto.MemberItem, 0, len(members))
	for _, member := range members {
		item := dto.MemberItem{
			ID:   member.MemberID(),
			Name: member.MemberName(),
			Kind: member.MemberKind(),
		}
		switch m := member.(type) {
		case *model.Folder:
			item.Shared = m.SharedWithMe
		case *model.Document:
			item.Shared = m.SharedWithMe
		}
		items = append(items, item)
	}
	return items
}

func breadcrumbItems(crumbs []model.Folder) []dto.BreadcrumbItem {
	items := make([]dto.BreadcrumbItem, 0, len(crumbs))
	for _, crumb := range crumbs {
		items = append(items, dto.BreadcrumbItem{ID: crumb.ID, Name: crumb.Name})
	}
	return items
}

// CreateFolder creates a folder, optionally under a parent.
func CreateFolder(c *gin.Context) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	folder, err := service.CreateFolder(user, req.ParentID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		if errors.Is(err, service.ErrDuplicateName) {
			utils.Fail(c, errors.New(service.Hooks().AlreadyExistsMessage(req.Name)))
			return
		}
		utils.Fail(c, err)
		return
	}
	mq.Notify(c.Request.Context(), service.Hooks().FolderCreatedMessage(user, folder))
	utils.Success(c, folder)
}

// FolderDetail returns one folder with breadcrumbs and its direct members.
func FolderDetail(c *gin.Context) {
	folderID, err := strconv.ParseUint(c.Param("folderID"), 10, 64)
	if err != nil {
		utils.NotFound(c)
		return
	}
	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	folder, err := service.GetFolderForUser(folderID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		utils.Fail(c, err)
		return
	}

	crumbs, err := service.Breadcrumbs(folder.ParentID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	members, err := service.Members(&folder.ID, true, &user.ID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	size, err := service.FolderSize(folder.ID)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	resp := dto.FolderDetailResponse{
		ID:          folder.ID,
		Name:        folder.Name,
		ParentID:    folder.ParentID,
		AuthorID:    folder.AuthorID,
		ModifiedAt:  folder.ModifiedAt,
		Shared:      folder.SharedWithMe,
		CanShare:    service.CanShareFolder(user, folder),
		Size:        size,
		Breadcrumbs: breadcrumbItems(crumbs),
		Members:     memberItems(members),
	}
	if folder.AuthorID == user.ID {
		sharedUsers, err := service.FolderSharedWith(folder.ID)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		for _, sharedUser := range sharedUsers {
			resp.SharedWith = append(resp.SharedWith, dto.SharedUserItem{
				ID:   sharedUser.ID,
				Name: sharedUser.DisplayName(),
			})
		}
	}
	utils.Success(c, resp)
}

// ListMembers lists the children visible to the caller. A null parent_id
// means the tree root; direct=false flattens the whole subtree.
func ListMembers(c *gin.Context) {
	var req dto.MemberListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if req.ParentID != nil {
		if _, err := service.GetFolderForUser(*req.ParentID, userID); err != nil {
			utils.NotFound(c)
			return
		}
	}
	members, err := service.Members(req.ParentID, req.Direct, &userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, memberItems(members))
}

// ShareFolder shares a top-level folder with other users. Only the author
// of a root folder may share; everyone else gets not-found.
func ShareFolder(c *gin.Context) {
	var req dto.ShareFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	folder, err := service.GetFolderForUser(req.FolderID, user.ID)
	if err != nil {
		utils.NotFound(c)
		return
	}
	if !service.CanShareFolder(user, folder) {
		utils.NotFound(c)
		return
	}
	targets, err := service.FindUsersByIds(req.UserIDs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.ShareFolder(folder, targets); err != nil {
		utils.Fail(c, err)
		return
	}
	for i := range targets {
		mq.Notify(c.Request.Context(), service.Hooks().FolderSharedMessage(&targets[i], folder))
	}
	utils.Success(c, gin.H{"shared_with": len(targets)})
}

// DeleteFolder removes a folder subtree. Author only.
func DeleteFolder(c *gin.Context) {
	var req dto.DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	folder, err := service.GetFolderForUser(req.FolderID, user.ID)
	if err != nil {
		utils.NotFound(c)
		return
	}
	if err := service.DeleteFolder(c.Request.Context(), user.ID, req.FolderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		utils.Fail(c, err)
		return
	}
	mq.Notify(c.Request.Context(), service.Hooks().FolderDeletedMessage(user, folder))
	utils.Success(c, gin.H{"deleted": folder.ID})
}
