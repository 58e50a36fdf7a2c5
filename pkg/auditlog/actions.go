package auditlog

// Action kinds recorded in the activity log.
const (
	ActionMovementCreate      = "movement_create"
	ActionMovementApprove     = "movement_approve"
	ActionMovementUpdate      = "movement_update"
	ActionMovementCancel      = "movement_cancel"
	ActionMovementAcknowledge = "movement_acknowledge"

	ActionBulkMovementCreate  = "bulk_movement_create"
	ActionBulkMovementApprove = "bulk_movement_approve"
	ActionBulkMovementUpdate  = "bulk_movement_update"
	ActionBulkMovementCancel  = "bulk_movement_cancel"

	ActionAssetCreate = "asset_create"
	ActionAssetUpdate = "asset_update"

	ActionLocationCreate = "location_create"
	ActionLocationUpdate = "location_update"

	ActionStockTakeCreate   = "stock_take_create"
	ActionStockTakeUpdate   = "stock_take_update"
	ActionStockTakeComplete = "stock_take_complete"

	ActionUserCreate = "user_create"
	ActionUserLogin  = "user_login"
)
