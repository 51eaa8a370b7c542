package database

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	GetUserByEmailSQL = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email = $1`

	GetUserByIDSQL = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE id = $1`

	ListUsersSQL = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		ORDER BY created_at ASC`

	UpdateUserSQL = `
		UPDATE users SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			role = COALESCE($4, role),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, password_hash, role, created_at`

	DeleteUserSQL = `
		DELETE FROM users WHERE id = $1`
)

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (id, name, description, price, category, image, preparation_time, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	GetMenuItemSQL = `
		SELECT id, name, description, price, category, image, preparation_time, is_available, created_at
		FROM menu_items WHERE id = $1`

	ListMenuItemsSQL = `
		SELECT id, name, description, price, category, image, preparation_time, is_available, created_at
		FROM menu_items
		ORDER BY created_at ASC`

	ListMenuItemsByCategorySQL = `
		SELECT id, name, description, price, category, image, preparation_time, is_available, created_at
		FROM menu_items
		WHERE category = $1
		ORDER BY created_at ASC`

	UpdateMenuItemSQL = `
		UPDATE menu_items SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			category = COALESCE($5, category),
			image = COALESCE($6, image),
			preparation_time = COALESCE($7, preparation_time),
			is_available = COALESCE($8, is_available)
		WHERE id = $1
		RETURNING id, name, description, price, category, image, preparation_time, is_available, created_at`

	DeleteMenuItemSQL = `
		DELETE FROM menu_items WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, user_id, total_amount, delivery_address, special_instructions, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, price)
		VALUES ($1, $2, $3, $4)`

	GetOrderSQL = `
		SELECT o.id, o.user_id, u.name, u.email, o.total_amount, o.delivery_address,
			   o.special_instructions, o.status, o.payment_status, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`

	ListOrdersSQL = `
		SELECT o.id, o.user_id, u.name, u.email, o.total_amount, o.delivery_address,
			   o.special_instructions, o.status, o.payment_status, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`

	ListOrdersByUserSQL = `
		SELECT o.id, o.user_id, u.name, u.email, o.total_amount, o.delivery_address,
			   o.special_instructions, o.status, o.payment_status, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`

	GetOrderLinesSQL = `
		SELECT l.menu_item_id, COALESCE(m.name, ''), l.quantity, l.price
		FROM order_lines l
		LEFT JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id = $1
		ORDER BY l.id ASC`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1`

	UpdateOrderPaymentStatusSQL = `
		UPDATE orders SET payment_status = $2, updated_at = NOW()
		WHERE id = $1`
)
