package storage

// Column lists shared by the templates and the listing queries. Scanners in
// ops read rows in exactly this order.
const (
	UserColumns       = "id, username, first_name, last_name, confirmed, confirmed_on, attempts_login, blocked, created_at"
	MealColumns       = "id, user_id, meal_date, meal_time, description, calories, within_budget"
	InvitationColumns = "id, email, token, status, created_at"
	ProfileColumns    = "user_id, maximum_calories"
)
