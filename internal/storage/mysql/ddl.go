package mysql

// Restaurant star schema, MySQL dialect.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		category_id   BIGINT PRIMARY KEY,
		category_name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		menu_item_id     BIGINT PRIMARY KEY,
		category_id      BIGINT,
		item_name        VARCHAR(255) NOT NULL,
		item_description TEXT,
		unit_price       DECIMAL(12,2) NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories(category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGINT PRIMARY KEY,
		first_name  VARCHAR(255),
		last_name   VARCHAR(255),
		email       VARCHAR(255),
		joined_at   DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		staff_id   BIGINT PRIMARY KEY,
		first_name VARCHAR(255),
		last_name  VARCHAR(255),
		role       VARCHAR(255),
		hired_at   DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id        BIGINT PRIMARY KEY,
		customer_id     BIGINT,
		staff_id        BIGINT,
		order_timestamp DATETIME NOT NULL,
		order_status    VARCHAR(64),
		location        VARCHAR(255),
		FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
		FOREIGN KEY (staff_id) REFERENCES staff(staff_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id BIGINT PRIMARY KEY,
		order_id      BIGINT NOT NULL,
		menu_item_id  BIGINT,
		quantity      INT NOT NULL,
		item_price    DECIMAL(12,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(menu_item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id     BIGINT PRIMARY KEY,
		order_id       BIGINT NOT NULL,
		payment_method VARCHAR(64),
		amount         DECIMAL(12,2),
		paid_at        DATETIME,
		FOREIGN KEY (order_id) REFERENCES orders(order_id)
	)`,
}

// Derived KPI views, MySQL dialect. DAYOFWEEK returns 1 for Sunday and 7 for
// Saturday, so weekend is IN (1, 7).
var viewDDL = []string{
	`CREATE OR REPLACE VIEW kpi_daily_revenue AS
	SELECT DATE(o.order_timestamp) AS order_date,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY DATE(o.order_timestamp)`,

	`CREATE OR REPLACE VIEW kpi_average_order_value AS
	SELECT ROUND(AVG(order_total), 2) AS average_order_value
	FROM (
		SELECT order_id, SUM(quantity * item_price) AS order_total
		FROM order_items
		GROUP BY order_id
	) order_totals`,

	`CREATE OR REPLACE VIEW kpi_revenue_per_hour AS
	SELECT HOUR(o.order_timestamp) AS hour,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY HOUR(o.order_timestamp)`,

	`CREATE OR REPLACE VIEW kpi_top_menu_items AS
	SELECT mi.item_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	GROUP BY mi.item_name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW kpi_revenue_by_category AS
	SELECT c.category_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	JOIN categories c ON c.category_id = mi.category_id
	GROUP BY c.category_name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW kpi_weekday_vs_weekend AS
	SELECT CASE WHEN DAYOFWEEK(o.order_timestamp) IN (1, 7)
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1`,

	`CREATE OR REPLACE VIEW sales_trends_hourly AS
	SELECT DATE(o.order_timestamp) AS order_date,
	       HOUR(o.order_timestamp) AS hour,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1, 2`,

	`CREATE OR REPLACE VIEW sales_weekday_vs_weekend AS
	SELECT DATE(o.order_timestamp) AS order_date,
	       CASE WHEN DAYOFWEEK(o.order_timestamp) IN (1, 7)
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1, 2`,
}
