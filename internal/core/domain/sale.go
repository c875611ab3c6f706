package domain

import "github.com/bosco250/uruti-schedule-service/internal/core/json_types"

type Sale struct {
	ID          string              `json:"id"`
	EmployeeID  string              `json:"employeeId"`
	ProductName string              `json:"productName,omitempty"`
	Amount      float64             `json:"amount"`
	Commission  float64             `json:"commission"`
	CreatedAt   json_types.DateTime `json:"createdAt"`
}
