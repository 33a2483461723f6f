package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Wallets lists the wallets of one portfolio
func (h *WalletHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	wallets, err := h.walletService.GetWallets(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve wallets")
		return
	}
	respondJSON(w, http.StatusOK, wallets)
}

// CreateWallet creates a wallet under the portfolio in the URL
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.CreateWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID

	if err := validation.ValidateCreateWallet(req); err != nil {
		respondServiceError(w, err, "Invalid wallet")
		return
	}

	wallet, err := h.walletService.CreateWallet(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create wallet")
		return
	}
	respondJSON(w, http.StatusCreated, wallet)
}

// UpdateWallet applies a partial update to a wallet
func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateWallet(req); err != nil {
		respondServiceError(w, err, "Invalid wallet update")
		return
	}

	wallet, err := h.walletService.UpdateWallet(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update wallet")
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

// DeleteWallet removes a wallet
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.walletService.DeleteWallet(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete wallet")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
