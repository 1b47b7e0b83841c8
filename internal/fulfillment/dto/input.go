package dto

type LineItemInput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type ItemResult struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	RemainingStock int    `json:"remaining_stock"`
}

type FulfillmentResult struct {
	OrderID          *string      `json:"order_id"`
	AlreadyProcessed bool         `json:"already_processed"`
	Items            []ItemResult `json:"items"`
}
