package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"stayhub/internal/domain"
)

func (r *Repo) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	amen, _ := json.Marshal(p.Amenities)
	imgs, _ := json.Marshal(p.Images)
	_, err := r.q(ctx).ExecContext(ctx, insertPropertySQL,
		p.ID, p.HostID, p.Title, valStr(p.Description), string(p.PropertyType), p.PricePerNight.StringFixed(2),
		p.Latitude, p.Longitude, p.Address, p.City, p.Country,
		p.Guests, p.Bedrooms, p.Beds, p.Bathrooms, string(amen), string(imgs), valStr(p.Rules), string(p.Status),
	)
	if err != nil {
		return domain.Property{}, err
	}
	return r.GetProperty(ctx, p.ID)
}

func (r *Repo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return r.scanProperty(r.q(ctx).QueryRowContext(ctx, selectPropertyCols+`WHERE id = ?`, id))
}

// GetPropertyForUpdate locks the property row until the surrounding
// transaction ends. Must only be called inside WithTx.
func (r *Repo) GetPropertyForUpdate(ctx context.Context, id string) (domain.Property, error) {
	return r.scanProperty(r.q(ctx).QueryRowContext(ctx, selectPropertyCols+`WHERE id = ? FOR UPDATE`, id))
}

func (r *Repo) UpdateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	amen, _ := json.Marshal(p.Amenities)
	imgs, _ := json.Marshal(p.Images)
	res, err := r.q(ctx).ExecContext(ctx, updatePropertySQL,
		p.Title, valStr(p.Description), string(p.PropertyType), p.PricePerNight.StringFixed(2),
		p.Latitude, p.Longitude, p.Address, p.City, p.Country,
		p.Guests, p.Bedrooms, p.Beds, p.Bathrooms,
		string(amen), string(imgs), valStr(p.Rules), string(p.Status),
		p.ID,
	)
	if err != nil {
		return domain.Property{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// zero rows can also mean a no-op update; confirm existence
		if _, gerr := r.GetProperty(ctx, p.ID); gerr != nil {
			return domain.Property{}, gerr
		}
	}
	return r.GetProperty(ctx, p.ID)
}

func (r *Repo) DeleteProperty(ctx context.Context, id string) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) GetPropertyView(ctx context.Context, id string) (domain.PropertyView, error) {
	row := r.q(ctx).QueryRowContext(ctx, selectPropertyViewSQL, id)
	var pv domain.PropertyView
	var desc, rules, avatar sql.NullString
	var ptype, status string
	var amenJSON, imgsJSON []byte
	err := row.Scan(
		&pv.ID, &pv.HostID, &pv.Title, &desc, &ptype, &pv.PricePerNight,
		&pv.Latitude, &pv.Longitude, &pv.Address, &pv.City, &pv.Country,
		&pv.Guests, &pv.Bedrooms, &pv.Beds, &pv.Bathrooms, &amenJSON, &imgsJSON, &rules, &status,
		&pv.CreatedAt, &pv.UpdatedAt,
		&pv.HostName, &avatar, &pv.HostVerified,
		&pv.AvgRating, &pv.ReviewCount,
	)
	if err == sql.ErrNoRows {
		return domain.PropertyView{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.PropertyView{}, err
	}
	pv.Description = strPtr(desc)
	pv.Rules = strPtr(rules)
	pv.HostAvatar = strPtr(avatar)
	pv.PropertyType = domain.PropertyType(ptype)
	pv.Status = domain.PropertyStatus(status)
	_ = json.Unmarshal(amenJSON, &pv.Amenities)
	_ = json.Unmarshal(imgsJSON, &pv.Images)
	return pv, nil
}

// SearchProperties filters active properties and computes haversine distance
// in SQL; rows beyond the radius are cut here rather than in the query so
// the aggregate join stays simple.
func (r *Repo) SearchProperties(ctx context.Context, q domain.PropertySearch) ([]domain.PropertyView, error) {
	conds := []string{`p.status = 'active'`}
	// placeholders appear in query-text order: the three in the distance
	// expression first, then the WHERE filters, then LIMIT
	args := []any{q.Latitude, q.Longitude, q.Latitude}
	if q.MinPrice != nil {
		conds = append(conds, `p.price_per_night >= ?`)
		args = append(args, q.MinPrice.StringFixed(2))
	}
	if q.MaxPrice != nil {
		conds = append(conds, `p.price_per_night <= ?`)
		args = append(args, q.MaxPrice.StringFixed(2))
	}
	if q.Guests != nil {
		conds = append(conds, `p.guests >= ?`)
		args = append(args, *q.Guests)
	}
	if q.PropertyType != nil {
		conds = append(conds, `p.property_type = ?`)
		args = append(args, string(*q.PropertyType))
	}
	args = append(args, q.Limit)

	query := `
SELECT p.id, p.host_id, p.title, p.description, p.property_type, p.price_per_night,
       p.latitude, p.longitude, p.address, p.city, p.country,
       p.guests, p.bedrooms, p.beds, p.bathrooms, p.amenities, p.images, p.rules, p.status,
       p.created_at, p.updated_at,
       CONCAT(u.first_name, ' ', u.last_name), u.avatar_url, u.verified,
       COALESCE(AVG(r.rating), 0), COUNT(DISTINCT r.id),
       6371 * ACOS(
         COS(RADIANS(?)) * COS(RADIANS(p.latitude)) * COS(RADIANS(p.longitude) - RADIANS(?)) +
         SIN(RADIANS(?)) * SIN(RADIANS(p.latitude))
       ) AS distance_km
FROM properties p
JOIN users u ON u.id = p.host_id
LEFT JOIN reviews r ON r.property_id = p.id AND r.review_type = 'guest_to_host'
WHERE ` + strings.Join(conds, " AND ") + `
GROUP BY p.id, u.id
ORDER BY distance_km
LIMIT ?`

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyView
	for rows.Next() {
		var pv domain.PropertyView
		var desc, rules, avatar sql.NullString
		var ptype, status string
		var amenJSON, imgsJSON []byte
		var dist float64
		if err := rows.Scan(
			&pv.ID, &pv.HostID, &pv.Title, &desc, &ptype, &pv.PricePerNight,
			&pv.Latitude, &pv.Longitude, &pv.Address, &pv.City, &pv.Country,
			&pv.Guests, &pv.Bedrooms, &pv.Beds, &pv.Bathrooms, &amenJSON, &imgsJSON, &rules, &status,
			&pv.CreatedAt, &pv.UpdatedAt,
			&pv.HostName, &avatar, &pv.HostVerified,
			&pv.AvgRating, &pv.ReviewCount,
			&dist,
		); err != nil {
			return nil, err
		}
		if dist > q.RadiusKm {
			continue
		}
		d := dist
		pv.DistanceKm = &d
		pv.Description = strPtr(desc)
		pv.Rules = strPtr(rules)
		pv.HostAvatar = strPtr(avatar)
		pv.PropertyType = domain.PropertyType(ptype)
		pv.Status = domain.PropertyStatus(status)
		_ = json.Unmarshal(amenJSON, &pv.Amenities)
		_ = json.Unmarshal(imgsJSON, &pv.Images)
		out = append(out, pv)
	}
	return out, rows.Err()
}

func (r *Repo) scanProperty(row *sql.Row) (domain.Property, error) {
	var p domain.Property
	var desc, rules sql.NullString
	var ptype, status string
	var amenJSON, imgsJSON []byte
	err := row.Scan(
		&p.ID, &p.HostID, &p.Title, &desc, &ptype, &p.PricePerNight,
		&p.Latitude, &p.Longitude, &p.Address, &p.City, &p.Country,
		&p.Guests, &p.Bedrooms, &p.Beds, &p.Bathrooms, &amenJSON, &imgsJSON, &rules, &status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Property{}, err
	}
	p.Description = strPtr(desc)
	p.Rules = strPtr(rules)
	p.PropertyType = domain.PropertyType(ptype)
	p.Status = domain.PropertyStatus(status)
	_ = json.Unmarshal(amenJSON, &p.Amenities)
	_ = json.Unmarshal(imgsJSON, &p.Images)
	return p, nil
}
