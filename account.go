package klingo

import (
	"context"
	"net/url"
	"strconv"
)

// AccountService wraps the account information inquiry endpoints. Unlike the
// generation families these are plain queries, not asynchronous tasks.
type AccountService struct {
	t *transport
}

// AccountCostsRequest queries resource package consumption in a time range.
// Timestamps are Unix milliseconds.
type AccountCostsRequest struct {
	StartTime        int64  `json:"start_time" validate:"required,gte=0"`
	EndTime          int64  `json:"end_time" validate:"required,gte=0"`
	ResourcePackName string `json:"resource_pack_name,omitempty"`
}

// ResourcePack describes one purchased resource package.
type ResourcePack struct {
	ResourcePackName string  `json:"resource_pack_name"`
	ResourcePackID   string  `json:"resource_pack_id"`
	ResourcePackType string  `json:"resource_pack_type"`
	TotalQuantity    float64 `json:"total_quantity"`
	// Remaining quantity is updated by the API with a 12 hour delay.
	RemainingQuantity float64 `json:"remaining_quantity"`
	PurchaseTime      int64   `json:"purchase_time"`
	EffectiveTime     int64   `json:"effective_time"`
	InvalidTime       int64   `json:"invalid_time"`
	Status            string  `json:"status"`
}

// AccountCosts is the payload of a costs inquiry.
type AccountCosts struct {
	Code          int            `json:"code"`
	Msg           string         `json:"msg"`
	ResourcePacks []ResourcePack `json:"resource_pack_subscribe_infos"`
}

// Costs fetches resource package consumption for the given time range.
func (s *AccountService) Costs(ctx context.Context, req *AccountCostsRequest) (*AccountCosts, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.EndTime < req.StartTime {
		return nil, &APIError{
			Kind:    ErrKindValidation,
			Message: "invalid request parameters",
			Fields:  []FieldError{{Field: "end_time", Message: "must not be before start_time"}},
		}
	}

	q := url.Values{}
	q.Set("start_time", strconv.FormatInt(req.StartTime, 10))
	q.Set("end_time", strconv.FormatInt(req.EndTime, 10))
	if req.ResourcePackName != "" {
		q.Set("resource_pack_name", req.ResourcePackName)
	}

	var costs AccountCosts
	if err := s.t.do(ctx, "GET", "/v1/account/costs", nil, q, &costs); err != nil {
		return nil, err
	}
	return &costs, nil
}
