package enums

// OrderStatus is stored on every order. Only the pending value is ever
// written today; the column exists for forward compatibility with the
// historical store files.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pendente"
)

// MovementType labels a stock movement. The column is free text and the
// store accepts any value as-is; these are the two labels the shell writes.
type MovementType string

const (
	MovementTypeIn  MovementType = "entrada"
	MovementTypeOut MovementType = "saida"
)
