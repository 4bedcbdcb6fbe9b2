package dto

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/challan"
	"stockbook/internal/domain/deliveryorder"
	"stockbook/internal/domain/dues"
	"stockbook/internal/domain/notes"
	"stockbook/internal/domain/profile"
	"stockbook/internal/domain/srlist"
)

// --- Challan ---

type ChallanItemRequest struct {
	ProductID       string `json:"id" binding:"required"`
	Title           string `json:"title"`
	SKU             string `json:"sku"`
	LiftingQuantity int64  `json:"liftingQuantity" binding:"required"`
}

type ChallanRequest struct {
	Number    string               `json:"challanNo" binding:"required"`
	Timestamp string               `json:"timestamp"`
	Items     []ChallanItemRequest `json:"items" binding:"required"`
}

func (r *ChallanRequest) ToDomain() (challan.Challan, error) {
	timestamp, err := ParsePostedAt(r.Timestamp)
	if err != nil {
		return challan.Challan{}, err
	}
	c := challan.Challan{
		Number:    r.Number,
		Timestamp: timestamp,
	}
	for _, item := range r.Items {
		c.Items = append(c.Items, challan.Item{
			ProductID:       item.ProductID,
			Title:           item.Title,
			SKU:             item.SKU,
			LiftingQuantity: item.LiftingQuantity,
		})
	}
	return c, nil
}

// ChallanResultResponse is the outcome of posting a challan.
type ChallanResultResponse struct {
	ID     string               `json:"id"`
	Items  []ItemResultResponse `json:"items"`
	Failed int                  `json:"failed"`
}

// FromChallanResult converts a challan posting result to wire form.
func FromChallanResult(res challan.Result) ChallanResultResponse {
	out := ChallanResultResponse{
		ID:     res.Challan.ID,
		Items:  make([]ItemResultResponse, 0, len(res.Items)),
		Failed: res.Failed,
	}
	for _, item := range res.Items {
		r := ItemResultResponse{
			Index:     item.Index,
			ProductID: item.ProductID,
			EntryID:   item.EntryID,
		}
		if item.Err != nil {
			r.Error = item.Err.Error()
		}
		out.Items = append(out.Items, r)
	}
	return out
}

// --- Dues ---

type DueRequest struct {
	OutletName string  `json:"outletName" binding:"required"`
	RouteName  string  `json:"routeName"`
	Owner      string  `json:"owner"`
	Amount     float64 `json:"amount" binding:"min=0"`
	Reference  string  `json:"reference"`
	Status     string  `json:"status"`
	DueDate    string  `json:"dueDate" binding:"required"`
}

func (r *DueRequest) ToDomain() (dues.Due, error) {
	dueDate, err := time.Parse(DateLayout, r.DueDate)
	if err != nil {
		dueDate, err = time.Parse(time.RFC3339, r.DueDate)
		if err != nil {
			return dues.Due{}, err
		}
	}
	return dues.Due{
		OutletName: r.OutletName,
		RouteName:  r.RouteName,
		Owner:      r.Owner,
		Amount:     types.NewMoney(r.Amount),
		Reference:  r.Reference,
		Status:     r.Status,
		DueDate:    dueDate,
	}, nil
}

// --- Delivery orders ---

type DeliveryOrderRequest struct {
	Bank          string  `json:"bank" binding:"required"`
	Branch        string  `json:"branch"`
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"doAmount" binding:"required"`
	Date          string  `json:"doDate" binding:"required"`
	Reference     string  `json:"reference"`
}

func (r *DeliveryOrderRequest) ToDomain() (deliveryorder.Order, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		date, err = time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return deliveryorder.Order{}, err
		}
	}
	return deliveryorder.Order{
		Bank:          r.Bank,
		Branch:        r.Branch,
		AccountNumber: r.AccountNumber,
		Amount:        types.NewMoney(r.Amount),
		Date:          date,
		Reference:     r.Reference,
	}, nil
}

// --- Notes ---

type NoteRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"notes"`
}

func (r *NoteRequest) ToDomain() notes.Note {
	return notes.Note{Title: r.Title, Body: r.Body}
}

// --- SR list ---

type RepresentativeRequest struct {
	Name        string   `json:"name" binding:"required"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
	DateOfJoin  string   `json:"dateOfJoin"`
	RouteList   []string `json:"routeList"`
}

func (r *RepresentativeRequest) ToDomain() (srlist.Representative, error) {
	dateOfJoin, err := ParsePostedAt(r.DateOfJoin)
	if err != nil {
		return srlist.Representative{}, err
	}
	return srlist.Representative{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		DateOfJoin:  dateOfJoin,
		RouteList:   r.RouteList,
	}, nil
}

// --- Business profile ---

type ProfileRequest struct {
	Email             string  `json:"email"`
	DisplayName       string  `json:"displayName"`
	PhoneNumber       string  `json:"phoneNumber"`
	BusinessName      string  `json:"businessName"`
	CompanyName       string  `json:"companyName"`
	GroupName         string  `json:"groupName"`
	ZoneName          string  `json:"zoneName"`
	Address           string  `json:"address"`
	InitialInvestment float64 `json:"initialInvestment"`
}

func (r *ProfileRequest) ToDomain() profile.Profile {
	return profile.Profile{
		Email:             r.Email,
		DisplayName:       r.DisplayName,
		PhoneNumber:       r.PhoneNumber,
		BusinessName:      r.BusinessName,
		CompanyName:       r.CompanyName,
		GroupName:         r.GroupName,
		ZoneName:          r.ZoneName,
		Address:           r.Address,
		InitialInvestment: types.NewMoney(r.InitialInvestment),
	}
}
