package mysql

const insertUserSQL = `
INSERT INTO users
  (id, email, password_hash, first_name, last_name, role, verified, phone, avatar_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectUserCols = `
SELECT id, email, password_hash, first_name, last_name, role, verified, phone, avatar_url, created_at, updated_at
FROM users
`

const insertPropertySQL = `
INSERT INTO properties
  (id, host_id, title, description, property_type, price_per_night,
   latitude, longitude, address, city, country,
   guests, bedrooms, beds, bathrooms, amenities, images, rules, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectPropertyCols = `
SELECT id, host_id, title, description, property_type, price_per_night,
       latitude, longitude, address, city, country,
       guests, bedrooms, beds, bathrooms, amenities, images, rules, status,
       created_at, updated_at
FROM properties
`

const updatePropertySQL = `
UPDATE properties SET
  title = ?, description = ?, property_type = ?, price_per_night = ?,
  latitude = ?, longitude = ?, address = ?, city = ?, country = ?,
  guests = ?, bedrooms = ?, beds = ?, bathrooms = ?,
  amenities = ?, images = ?, rules = ?, status = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// Property joined with host info and review aggregates.
const selectPropertyViewSQL = `
SELECT p.id, p.host_id, p.title, p.description, p.property_type, p.price_per_night,
       p.latitude, p.longitude, p.address, p.city, p.country,
       p.guests, p.bedrooms, p.beds, p.bathrooms, p.amenities, p.images, p.rules, p.status,
       p.created_at, p.updated_at,
       CONCAT(u.first_name, ' ', u.last_name), u.avatar_url, u.verified,
       COALESCE(AVG(r.rating), 0), COUNT(DISTINCT r.id)
FROM properties p
JOIN users u ON u.id = p.host_id
LEFT JOIN reviews r ON r.property_id = p.id AND r.review_type = 'guest_to_host'
WHERE p.id = ?
GROUP BY p.id, u.id
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, property_id, guest_id, check_in, check_out, guests, total_price, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectBookingCols = `
SELECT id, property_id, guest_id, check_in, check_out, guests, total_price, status, created_at, updated_at
FROM bookings
`

const updateBookingStatusSQL = `
UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

const insertPaymentSQL = `
INSERT INTO payments
  (id, booking_id, payer_id, amount, platform_fee, host_amount, payment_method, payment_status, transaction_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectPaymentCols = `
SELECT id, booking_id, payer_id, amount, platform_fee, host_amount, payment_method, payment_status, transaction_id, created_at, updated_at
FROM payments
`

const updatePaymentStatusSQL = `
UPDATE payments SET payment_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

// DATE_FORMAT groups settlement rows per calendar month.
const hostEarningsSQL = `
SELECT DATE_FORMAT(pay.created_at, '%Y-%m') AS month,
       COALESCE(SUM(pay.host_amount), 0),
       COALESCE(SUM(pay.platform_fee), 0),
       COUNT(pay.id)
FROM payments pay
JOIN bookings b ON b.id = pay.booking_id
JOIN properties p ON p.id = b.property_id
WHERE p.host_id = ?
  AND pay.payment_status = 'completed'
  AND pay.created_at BETWEEN ? AND ?
GROUP BY DATE_FORMAT(pay.created_at, '%Y-%m')
ORDER BY month DESC
`

const insertReviewSQL = `
INSERT INTO reviews
  (id, booking_id, reviewer_id, reviewee_id, property_id, rating, comment, review_type)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectReviewViewCols = `
SELECT r.id, r.booking_id, r.reviewer_id, r.reviewee_id, r.property_id, r.rating, r.comment, r.review_type, r.created_at,
       CONCAT(u.first_name, ' ', u.last_name), u.avatar_url
FROM reviews r
JOIN users u ON u.id = r.reviewer_id
`

const insertMessageSQL = `
INSERT INTO messages
  (id, sender_id, receiver_id, booking_id, content, is_read)
VALUES
  (?, ?, ?, ?, ?, FALSE)
`

const selectConversationSQL = `
SELECT m.id, m.sender_id, m.receiver_id, m.booking_id, m.content, m.is_read, m.created_at,
       CONCAT(u.first_name, ' ', u.last_name), u.avatar_url
FROM messages m
JOIN users u ON u.id = m.sender_id
WHERE (m.sender_id = ? AND m.receiver_id = ?)
   OR (m.sender_id = ? AND m.receiver_id = ?)
ORDER BY m.created_at ASC
`

const markConversationReadSQL = `
UPDATE messages SET is_read = TRUE
WHERE sender_id = ? AND receiver_id = ? AND is_read = FALSE
`

const insertVerificationSQL = `
INSERT INTO verifications
  (id, user_id, document_type, document_number, document_front_url, document_back_url, selfie_url, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectVerificationCols = `
SELECT id, user_id, document_type, document_number, document_front_url, document_back_url, selfie_url, status, verified_at, created_at, updated_at
FROM verifications
`

const updateVerificationStatusSQL = `
UPDATE verifications SET status = ?, verified_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`
