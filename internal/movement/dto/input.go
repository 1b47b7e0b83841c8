package dto

type RecordMovementInput struct {
	ProductID      string
	OrderID        *string
	QuantityChange int
	MovementType   string
	RemainingStock int
	Notes          string
}
