// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

// getLatestSave answers 200 with the save or 204 when the account has none.
func (h *Handler) getLatestSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		logger.FromRequest(r).Error().Str("func", "*Handler.getLatestSave").Msg("no account ID was given")
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	save, err := h.services.SaveService.GetLatest(ctx, accountID)
	if errors.Is(err, store.ErrSaveNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, save)
}

// putLatestSave stores the save. A revision mismatch answers 409 with the
// stored meta so the client can offer both sides.
func (h *Handler) putLatestSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		logger.FromRequest(r).Error().Str("func", "*Handler.putLatestSave").Msg("no account ID was given")
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	var req models.PutSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.saveWrite(outcomeRejected)
		writeError(w, r, err)
		return
	}

	meta, err := h.services.SaveService.PutLatest(ctx, accountID, req)
	switch {
	case errors.Is(err, store.ErrRevisionConflict):
		h.metrics.saveWrite(outcomeConflict)
		logger.FromRequest(r).Info().Int64("account_id", accountID).
			Interface("expected", req.ExpectedRevision).Interface("current", meta.Revision).
			Msg("save revision conflict")
		utils.WriteJSON(w, http.StatusConflict, models.SaveMetaResponse{Meta: meta, Message: app.MsgSaveRevisionConflict})
	case err != nil:
		h.metrics.saveWrite(outcomeRejected)
		writeError(w, r, err)
	default:
		h.metrics.saveWrite(outcomeStored)
		utils.WriteJSON(w, http.StatusOK, models.SaveMetaResponse{Meta: meta})
	}
}
