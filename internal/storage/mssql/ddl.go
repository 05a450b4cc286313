package mssql

// Restaurant star schema, SQL Server dialect.
var schemaDDL = []string{
	`IF OBJECT_ID('categories', 'U') IS NULL
	CREATE TABLE categories (
		category_id   BIGINT PRIMARY KEY,
		category_name NVARCHAR(255) NOT NULL
	)`,
	`IF OBJECT_ID('menu_items', 'U') IS NULL
	CREATE TABLE menu_items (
		menu_item_id     BIGINT PRIMARY KEY,
		category_id      BIGINT REFERENCES categories(category_id),
		item_name        NVARCHAR(255) NOT NULL,
		item_description NVARCHAR(MAX),
		unit_price       DECIMAL(12,2) NOT NULL
	)`,
	`IF OBJECT_ID('customers', 'U') IS NULL
	CREATE TABLE customers (
		customer_id BIGINT PRIMARY KEY,
		first_name  NVARCHAR(255),
		last_name   NVARCHAR(255),
		email       NVARCHAR(255),
		joined_at   DATETIME2
	)`,
	`IF OBJECT_ID('staff', 'U') IS NULL
	CREATE TABLE staff (
		staff_id   BIGINT PRIMARY KEY,
		first_name NVARCHAR(255),
		last_name  NVARCHAR(255),
		role       NVARCHAR(255),
		hired_at   DATETIME2
	)`,
	`IF OBJECT_ID('orders', 'U') IS NULL
	CREATE TABLE orders (
		order_id        BIGINT PRIMARY KEY,
		customer_id     BIGINT REFERENCES customers(customer_id),
		staff_id        BIGINT REFERENCES staff(staff_id),
		order_timestamp DATETIME2 NOT NULL,
		order_status    NVARCHAR(64),
		location        NVARCHAR(255)
	)`,
	`IF OBJECT_ID('order_items', 'U') IS NULL
	CREATE TABLE order_items (
		order_item_id BIGINT PRIMARY KEY,
		order_id      BIGINT NOT NULL REFERENCES orders(order_id),
		menu_item_id  BIGINT REFERENCES menu_items(menu_item_id),
		quantity      INT NOT NULL,
		item_price    DECIMAL(12,2) NOT NULL
	)`,
	`IF OBJECT_ID('payments', 'U') IS NULL
	CREATE TABLE payments (
		payment_id     BIGINT PRIMARY KEY,
		order_id       BIGINT NOT NULL REFERENCES orders(order_id),
		payment_method NVARCHAR(64),
		amount         DECIMAL(12,2),
		paid_at        DATETIME2
	)`,
}

// Derived KPI views, SQL Server dialect. CREATE OR ALTER VIEW requires 2016
// SP1; each statement must be the only one in its batch, which holds here
// since statements are executed one at a time.
var viewDDL = []string{
	`CREATE OR ALTER VIEW kpi_daily_revenue AS
	SELECT CAST(o.order_timestamp AS DATE) AS order_date,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY CAST(o.order_timestamp AS DATE)`,

	`CREATE OR ALTER VIEW kpi_average_order_value AS
	SELECT ROUND(AVG(order_total), 2) AS average_order_value
	FROM (
		SELECT order_id, SUM(quantity * item_price) AS order_total
		FROM order_items
		GROUP BY order_id
	) order_totals`,

	`CREATE OR ALTER VIEW kpi_revenue_per_hour AS
	SELECT DATEPART(HOUR, o.order_timestamp) AS [hour],
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY DATEPART(HOUR, o.order_timestamp)`,

	`CREATE OR ALTER VIEW kpi_top_menu_items AS
	SELECT mi.item_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	GROUP BY mi.item_name`,

	`CREATE OR ALTER VIEW kpi_revenue_by_category AS
	SELECT c.category_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	JOIN categories c ON c.category_id = mi.category_id
	GROUP BY c.category_name`,

	`CREATE OR ALTER VIEW kpi_weekday_vs_weekend AS
	SELECT CASE WHEN DATENAME(WEEKDAY, o.order_timestamp) IN ('Saturday', 'Sunday')
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY CASE WHEN DATENAME(WEEKDAY, o.order_timestamp) IN ('Saturday', 'Sunday')
	              THEN 'weekend' ELSE 'weekday' END`,

	`CREATE OR ALTER VIEW sales_trends_hourly AS
	SELECT CAST(o.order_timestamp AS DATE) AS order_date,
	       DATEPART(HOUR, o.order_timestamp) AS [hour],
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY CAST(o.order_timestamp AS DATE), DATEPART(HOUR, o.order_timestamp)`,

	`CREATE OR ALTER VIEW sales_weekday_vs_weekend AS
	SELECT CAST(o.order_timestamp AS DATE) AS order_date,
	       CASE WHEN DATENAME(WEEKDAY, o.order_timestamp) IN ('Saturday', 'Sunday')
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY CAST(o.order_timestamp AS DATE),
	         CASE WHEN DATENAME(WEEKDAY, o.order_timestamp) IN ('Saturday', 'Sunday')
	              THEN 'weekend' ELSE 'weekday' END`,
}
