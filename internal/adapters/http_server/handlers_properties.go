package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

type propertyReq struct {
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	PropertyType  string          `json:"property_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Guests        int             `json:"guests"`
	Bedrooms      int             `json:"bedrooms"`
	Beds          int             `json:"beds"`
	Bathrooms     float64         `json:"bathrooms"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
	Rules         *string         `json:"rules"`
	Status        string          `json:"status"`
}

func (r propertyReq) toDomain() (domain.Property, string) {
	if r.Title == "" || r.Address == "" || r.City == "" || r.Country == "" {
		return domain.Property{}, "title, address, city and country are required"
	}
	if !r.PricePerNight.IsPositive() {
		return domain.Property{}, "price_per_night must be positive"
	}
	if r.Guests <= 0 {
		return domain.Property{}, "guests must be positive"
	}
	switch domain.PropertyType(r.PropertyType) {
	case domain.PropertyHouse, domain.PropertyApartment, domain.PropertyRoom, domain.PropertyVilla:
	default:
		return domain.Property{}, "unknown property_type"
	}
	return domain.Property{
		Title:         r.Title,
		Description:   r.Description,
		PropertyType:  domain.PropertyType(r.PropertyType),
		PricePerNight: r.PricePerNight,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Address:       r.Address,
		City:          r.City,
		Country:       r.Country,
		Guests:        r.Guests,
		Bedrooms:      r.Bedrooms,
		Beds:          r.Beds,
		Bathrooms:     r.Bathrooms,
		Amenities:     r.Amenities,
		Images:        r.Images,
		Rules:         r.Rules,
		Status:        domain.PropertyStatus(r.Status),
	}, ""
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	if p.Role != domain.RoleHost && p.Role != domain.RoleAdmin {
		writeProblem(w, http.StatusForbidden, "Forbidden", "only hosts may list properties")
		return
	}
	var req propertyReq
	if !decode(w, r, &req) {
		return
	}
	prop, detail := req.toDomain()
	if detail != "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", detail)
		return
	}
	created, err := h.Properties.Create(r.Context(), prop, p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPropertyDTO(created))
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	v, err := h.Properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyViewDTO(v))
}

func (h *Handlers) searchProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "lat and lon are required numbers")
		return
	}
	search := domain.PropertySearch{Latitude: lat, Longitude: lon}
	if v := q.Get("radius_km"); v != "" {
		search.RadiusKm, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			search.MinPrice = &d
		}
	}
	if v := q.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			search.MaxPrice = &d
		}
	}
	if v := q.Get("guests"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			search.Guests = &n
		}
	}
	if v := q.Get("property_type"); v != "" {
		pt := domain.PropertyType(v)
		search.PropertyType = &pt
	}
	if v := q.Get("limit"); v != "" {
		search.Limit, _ = strconv.Atoi(v)
	}

	views, err := h.Properties.Search(r.Context(), search)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]propertyViewDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toPropertyViewDTO(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": out, "count": len(out)})
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req propertyReq
	if !decode(w, r, &req) {
		return
	}
	prop, detail := req.toDomain()
	if detail != "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", detail)
		return
	}
	updated, err := h.Properties.Update(r.Context(), chi.URLParam(r, "id"), p.UserID, prop)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyDTO(updated))
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	if err := h.Properties.Delete(r.Context(), chi.URLParam(r, "id"), p.UserID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
