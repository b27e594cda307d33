package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/dto/payment/request"
	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/dto/payment/response"
	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-mpesa-service/internal/usecase/dto/payment"
	paymentusecase "github.com/LavaJover/shvark-mpesa-service/internal/usecase/payment"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	callbackSecretHeader = "X-MPESA-SECRET"
	maxCallbackBody      = 1 << 20
)

type PaymentHandler struct {
	uc       paymentusecase.PaymentUsecase
	validate *validator.Validate
	tracer   trace.Tracer
}

func NewPaymentHandler(uc paymentusecase.PaymentUsecase) *PaymentHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &PaymentHandler{
		uc:       uc,
		validate: v,
		tracer:   otel.Tracer("payment-http"),
	}
}

// POST /payments/stk-push
func (h *PaymentHandler) StkPush(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "payments.StkPush")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response.Fail("Unauthenticated"))
		return
	}

	var req request.StkPushRequest
	if fieldErrors := h.decodeAndValidate(r.Body, &req); fieldErrors != nil {
		writeJSON(w, http.StatusUnprocessableEntity, response.ValidationFailed(fieldErrors))
		return
	}
	span.SetAttributes(attribute.Int64("order.id", req.OrderID))

	out, err := h.uc.InitiatePayment(ctx, &paymentdto.InitiatePaymentInput{
		UserID:  userID,
		OrderID: req.OrderID,
		Phone:   req.Phone,
	})
	if err != nil {
		span.RecordError(err)
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response.OK("STK push initiated", out))
}

// GET /payments/orders/{orderId}/latest
func (h *PaymentHandler) LatestForOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "payments.LatestForOrder")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response.Fail("Unauthenticated"))
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		writeError(w, r, domain.ErrOrderNotFound)
		return
	}

	txn, err := h.uc.LatestForOrder(ctx, userID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response.OK("", paymentdto.ToTransactionOutput(txn)))
}

// POST /payments/callback
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "payments.Callback")
	defer span.End()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBody))
	if err != nil {
		slog.Warn("failed to read mpesa callback body", "error", err.Error())
	}

	out := h.uc.HandleCallback(ctx, &paymentdto.CallbackInput{
		QuerySecret:  r.URL.Query().Get("secret"),
		HeaderSecret: r.Header.Get(callbackSecretHeader),
		Payload:      payload,
	})
	span.SetAttributes(attribute.String("mpesa.callback.outcome", string(out.Outcome)))

	writeJSON(w, out.HTTPStatus, out.Ack)
}

func (h *PaymentHandler) decodeAndValidate(body io.Reader, req *request.StkPushRequest) map[string][]string {
	if err := json.NewDecoder(body).Decode(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return map[string][]string{typeErr.Field: {"The " + humanField(typeErr.Field) + " field has an invalid type."}}
		}
		return map[string][]string{"body": {"The request body must be a JSON object."}}
	}

	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string][]string{"body": {err.Error()}}
	}

	fieldErrors := make(map[string][]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], validationMessage(fe))
	}
	return fieldErrors
}

func validationMessage(fe validator.FieldError) string {
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "max":
		return "The " + field + " field must not be greater than " + fe.Param() + " characters."
	case "gt":
		return "The " + field + " field must be greater than " + fe.Param() + "."
	default:
		return "The " + field + " field is invalid."
	}
}

func humanField(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
