// Package tickethdl - Handler CRUD cho Ticket (/api/tickets).
package tickethdl

import (
	"context"
	"fmt"
	"time"

	basehdl "github.com/maddygoround/hapi-go-mongo/internal/api/base/handler"
	ticketdto "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/dto"
	"github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStore là các thao tác lưu trữ mà handler cần (ticketsvc.TicketService thỏa mãn)
type TicketStore interface {
	Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	FindAll(ctx context.Context) ([]models.Ticket, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Ticket, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Ticket, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// TicketHandler xử lý các route CRUD của tickets
type TicketHandler struct {
	store TicketStore
	now   func() time.Time
}

// NewTicketHandler tạo TicketHandler
func NewTicketHandler(store TicketStore) *TicketHandler {
	return &TicketHandler{store: store, now: time.Now}
}

// HandleCreate xử lý POST /api/tickets → 201 {id}
func (h *TicketHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input ticketdto.TicketCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		created, err := h.store.Create(c.Context(), input.ToModel(h.now()))
		if err != nil {
			return storeError(c, "create", err)
		}

		logger.LogCRUD("create", models.TicketCollection, created.ID.Hex(), c, map[string]interface{}{
			"performance_title": created.PerformanceTitle,
		})
		return basehdl.JSONResponse(c, common.StatusCreated, fiber.Map{"id": created.ID.Hex()})
	})
}

// HandleList xử lý GET /api/tickets → {tickets:[...]}
func (h *TicketHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		tickets, err := h.store.FindAll(c.Context())
		if err != nil {
			return storeError(c, "list", err)
		}
		if tickets == nil {
			tickets = []models.Ticket{}
		}
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"tickets": tickets})
	})
}

// HandleGet xử lý GET /api/tickets/:id → {tickets:[ticket]}
func (h *TicketHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseTicketID(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		ticket, err := h.store.FindOneById(c.Context(), id)
		if err != nil {
			return storeError(c, "get", err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"tickets": []models.Ticket{ticket}})
	})
}

// HandleUpdate xử lý PUT /api/tickets/:id → {tickets:[ticket]} sau cập nhật
func (h *TicketHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseTicketID(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		var input ticketdto.TicketUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}

		set := input.ToSet()
		updated, err := h.store.UpdateById(c.Context(), id, set)
		if err != nil {
			return storeError(c, "update", err)
		}

		fields := make([]string, 0, len(set))
		for k := range set {
			fields = append(fields, k)
		}
		logger.LogCRUD("update", models.TicketCollection, id.Hex(), c, map[string]interface{}{"fields": fields})
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"tickets": []models.Ticket{updated}})
	})
}

// HandleDelete xử lý DELETE /api/tickets/:id → 204
func (h *TicketHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseTicketID(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		if err := h.store.DeleteById(c.Context(), id); err != nil {
			return storeError(c, "delete", err)
		}

		logger.LogCRUD("delete", models.TicketCollection, id.Hex(), c, nil)
		return c.SendStatus(common.StatusNoContent)
	})
}

// storeError log lỗi từ store kèm module/collection rồi trả response lỗi
func storeError(c fiber.Ctx, operation string, err error) error {
	logger.WithRequestInfo(c, "ticket", models.TicketCollection).
		WithField("operation", operation).
		WithError(err).
		Debug("Ticket store error")
	return basehdl.HandleError(c, err)
}

func parseTicketID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Params("id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return id, nil
}
