package http

import (
	"context"
	"io"
	"net/http"

	"github.com/vogiaan1904/swiftseats/pkg/response"
)

const signatureHeader = "Stripe-Signature"

// Webhook hands the raw body to verification untouched; any re-encoding would
// break the signature.
func (h *HTTPHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.webhookTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.webhookTimeout)
		defer cancel()
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.l.Warnf(ctx, "delivery.http.Webhook: %v", err)
		response.Error(w, errWebhook)
		return
	}

	out, err := h.svc.Notifications.HandleNotification(ctx, payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.fail(w, r, "Webhook", err)
		return
	}

	if out.Reconciliation != nil {
		h.l.Infof(ctx, "delivery.http.Webhook: transaction=%s state=%s duplicate=%t",
			out.Reconciliation.TransactionID, out.Reconciliation.State, out.Reconciliation.Duplicate)
	}

	response.JSON(w, http.StatusOK, map[string]bool{"received": true})
}
