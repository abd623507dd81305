package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"storefront/internal/checkout"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/stock"
	"storefront/internal/store"
)

type lineView struct {
	Product      models.Product  `json:"product"`
	Quantity     int64           `json:"quantity"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	LineTotal    int64           `json:"lineTotal"`
}

type cartView struct {
	Items  []lineView     `json:"items"`
	Coupon *models.Coupon `json:"coupon,omitempty"`
	Totals pricing.Totals `json:"totals"`
}

func buildCartView(cart models.Cart, coupon *models.Coupon) cartView {
	items := make([]lineView, 0, len(cart))
	for _, l := range cart {
		items = append(items, lineView{
			Product:      l.Product,
			Quantity:     l.Quantity,
			DiscountRate: pricing.EffectiveRate(l, cart),
			LineTotal:    pricing.LineTotal(l, cart),
		})
	}
	return cartView{
		Items:  items,
		Coupon: coupon,
		Totals: pricing.CartTotals(cart, coupon),
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)

	items, err := s.store.ListProducts(r.Context(), q, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	total, err := s.store.CountProducts(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product_not_found", "no such product: "+id)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := s.store.ListCoupons(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": coupons})
}

// loadCart translates storage errors into responses, returning false
// when the request has already been answered.
func (s *Server) loadCart(w http.ResponseWriter, r *http.Request, token string) (models.Cart, *models.Coupon, bool) {
	cart, coupon, err := s.store.LoadCart(r.Context(), token)
	var pnf store.ProductNotFoundError
	if errors.As(err, &pnf) {
		writeError(w, http.StatusConflict, "product_not_found",
			"cart references a product no longer in the catalog: "+pnf.ID)
		return nil, nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return nil, nil, false
	}
	return cart, coupon, true
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	cart, coupon, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, coupon))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_json", "expected {\"product_id\": ...}")
		return
	}
	p, err := s.store.GetProduct(r.Context(), req.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product_not_found", "no such product: "+req.ProductID)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	cart, coupon, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	if !stock.CanAdd(p, cart, 1) {
		writeError(w, http.StatusConflict, "insufficient_stock",
			"no stock left for "+p.Name+" (remaining "+strconv.FormatInt(stock.Remaining(p, cart), 10)+")")
		return
	}
	cart = stock.AddOrIncrement(cart, p)
	if err := s.store.SaveCart(r.Context(), token, cart, coupon); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, coupon))
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	productID := mux.Vars(r)["productID"]
	var req struct {
		Quantity int64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "expected {\"quantity\": ...}")
		return
	}
	cart, coupon, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	if req.Quantity > 0 {
		line, found := cart.Line(productID)
		if !found {
			writeError(w, http.StatusNotFound, "line_not_found", "product not in cart: "+productID)
			return
		}
		if req.Quantity > line.Product.Stock {
			writeError(w, http.StatusConflict, "insufficient_stock",
				"only "+strconv.FormatInt(line.Product.Stock, 10)+" in stock for "+line.Product.Name)
			return
		}
	}
	cart = stock.SetQuantity(cart, productID, req.Quantity)
	if err := s.store.SaveCart(r.Context(), token, cart, coupon); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, coupon))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	productID := mux.Vars(r)["productID"]
	cart, coupon, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	cart = stock.RemoveLine(cart, productID)
	if err := s.store.SaveCart(r.Context(), token, cart, coupon); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, coupon))
}

func (s *Server) selectCoupon(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_json", "expected {\"code\": ...}")
		return
	}
	c, err := s.store.GetCoupon(r.Context(), req.Code)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "coupon_not_found", "no such coupon: "+req.Code)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	cart, _, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	sess := checkout.Resume(cart, nil)
	if err := sess.SelectCoupon(c); err != nil {
		writeError(w, http.StatusConflict, "coupon_ineligible",
			"order must reach "+strconv.FormatInt(pricing.MinOrderForPercentage, 10)+" for percentage coupons")
		return
	}
	if err := s.store.SaveCart(r.Context(), token, cart, sess.Coupon()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, sess.Coupon()))
}

func (s *Server) clearCoupon(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	cart, _, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	if err := s.store.SaveCart(r.Context(), token, cart, nil); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartView(cart, nil))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	token := cartToken(w, r)
	cart, coupon, ok := s.loadCart(w, r, token)
	if !ok {
		return
	}
	sess := checkout.Resume(cart, coupon)
	receipt, err := sess.Checkout()
	if errors.Is(err, checkout.ErrEmptyCart) {
		writeError(w, http.StatusConflict, "empty_cart", "nothing to check out")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if err := s.store.SaveCart(r.Context(), token, sess.Cart(), sess.Coupon()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	s.publish(r.Context(), events.RKOrderCompleted, events.OrderCompletedPayload{
		OrderNumber:         receipt.OrderNumber,
		TotalBeforeDiscount: receipt.Totals.TotalBeforeDiscount,
		TotalAfterDiscount:  receipt.Totals.TotalAfterDiscount,
		CouponCode:          receipt.CouponCode,
	})
	s.log.Info().
		Str("order", receipt.OrderNumber).
		Str("total", humanize.Comma(receipt.Totals.TotalAfterDiscount)).
		Msg("order completed")

	writeJSON(w, http.StatusOK, receipt)
}
