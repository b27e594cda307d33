package request

type StkPushRequest struct {
	OrderID int64  `json:"order_id" validate:"required,gt=0"`
	Phone   string `json:"phone" validate:"required,max=32"`
}
