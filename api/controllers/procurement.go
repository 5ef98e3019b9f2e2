package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	"github.com/fitdesk-hq/fitdesk-backend/api/responses"
	"github.com/fitdesk-hq/fitdesk-backend/api/validators"
	"github.com/fitdesk-hq/fitdesk-backend/internal/procurement"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
)

// ListPurchaseOrders returns the studio's purchase orders.
func ListPurchaseOrders(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListOrders(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// GetPurchaseOrder returns one order with its lines.
func GetPurchaseOrder(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.GetOrder(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CreatePurchaseOrder drafts a new order against a vendor.
func CreatePurchaseOrder(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in procurement.CreateOrderInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.CreateOrder(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// IssuePurchaseOrder sends a draft order to its vendor.
func IssuePurchaseOrder(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.IssueOrder(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CancelPurchaseOrder cancels a draft or issued order.
func CancelPurchaseOrder(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.CancelOrder(r.Context(), middleware.StudioUUIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// PostGoodsReceipt records received quantities and moves stock.
func PostGoodsReceipt(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in procurement.CreateReceiptInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		receipt, err := svc.PostReceipt(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id,
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// ListRequisitions returns the studio's stock requisitions.
func ListRequisitions(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListRequisitions(r.Context(), middleware.StudioUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateRequisition asks for stock to be drawn for a job.
func CreateRequisition(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in procurement.CreateRequisitionInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		requisition, err := svc.CreateRequisition(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, requisition)
	}
}

// DecideRequisition approves or rejects a pending requisition.
func DecideRequisition(svc *procurement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "requisitionID"), "requisitionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in procurement.DecisionInput
		if err := validators.DecodeJSONBody(w, r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		requisition, err := svc.DecideRequisition(r.Context(),
			middleware.StudioUUIDFromContext(r.Context()),
			middleware.UserUUIDFromContext(r.Context()),
			id,
			in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, requisition)
	}
}
