package request

// UpdateSettingsRequest updates the shop settings. Omitted fields keep their
// current value.
type UpdateSettingsRequest struct {
	StoreName     *string `json:"store_name" binding:"omitempty,max=255"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	GSTIN         *string `json:"gstin"`
	Currency      *string `json:"currency" binding:"omitempty,len=3"`
	Timezone      *string `json:"timezone"`
	ReceiptFooter *string `json:"receipt_footer"`
}
