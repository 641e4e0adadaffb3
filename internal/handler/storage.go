package handler

import (
	"DocVault/internal/dto"
	"DocVault/internal/service"
	"DocVault/utils"

	"github.com/gin-gonic/gin"
)

// StorageStatus reports the caller's quota ledger with display hints.
func StorageStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	userStorage, err := service.GetUserStorage(userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	percentage := service.StoragePercentage(userStorage)
	color, err := service.StorageColor(userStorage)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, dto.StorageStatusResponse{
		BytesUsed:  userStorage.BytesUsed,
		BytesTotal: userStorage.BytesTotal,
		Used:       utils.ConvertBytes(userStorage.BytesUsed),
		Total:      utils.ConvertBytes(userStorage.BytesTotal),
		Percentage: percentage,
		Color:      color,
	})
}
