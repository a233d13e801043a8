package postgres

import "github.com/nonibytes/mangiato/mangiato/storage"

var SQLTemplates = storage.SQL{
	GetMeta: "SELECT value FROM meta WHERE key = $1",
	SetMeta: "INSERT INTO meta(key,value) VALUES($1,$2) ON CONFLICT(key) DO UPDATE SET value=EXCLUDED.value",

	InsertUser: `INSERT INTO users(username, first_name, last_name, confirmed, confirmed_on, attempts_login, blocked, created_at)
	             VALUES($1, $2, $3, $4, $5, 0, FALSE, $6)
	             RETURNING id`,
	GetUser:             "SELECT " + storage.UserColumns + " FROM users WHERE id = $1",
	GetUserByUsername:   "SELECT " + storage.UserColumns + " FROM users WHERE username = $1",
	UpdateUserNames:     "UPDATE users SET first_name = $2, last_name = $3 WHERE id = $1",
	ConfirmUser:         "UPDATE users SET confirmed = TRUE, confirmed_on = $2 WHERE id = $1",
	SetUserBlocked:      "UPDATE users SET blocked = $2::boolean, attempts_login = CASE WHEN $2::boolean THEN attempts_login ELSE 0 END WHERE id = $1",
	IncrementAttempts:   "UPDATE users SET attempts_login = attempts_login + 1, blocked = (blocked OR attempts_login + 1 >= $2) WHERE id = $1 RETURNING attempts_login, blocked",
	DeleteUser:          "DELETE FROM users WHERE id = $1",
	DeleteMealsByUser:   "DELETE FROM meals WHERE user_id = $1",
	DeleteProfileByUser: "DELETE FROM profiles WHERE user_id = $1",

	InsertProfile: "INSERT INTO profiles(user_id, maximum_calories) VALUES($1, $2)",
	GetProfile:    "SELECT " + storage.ProfileColumns + " FROM profiles WHERE user_id = $1",
	UpdateProfile: "UPDATE profiles SET maximum_calories = $2 WHERE user_id = $1",

	InsertMeal: `INSERT INTO meals(user_id, meal_date, meal_time, description, calories, within_budget)
	             VALUES($1, $2, $3, $4, $5, $6)
	             RETURNING id`,
	GetMeal:          "SELECT " + storage.MealColumns + " FROM meals WHERE id = $1",
	UpdateMeal:       "UPDATE meals SET meal_date = $2, meal_time = $3, description = $4, calories = $5 WHERE id = $1",
	DeleteMeal:       "DELETE FROM meals WHERE id = $1",
	DayMeals:         "SELECT id, meal_time, calories FROM meals WHERE user_id = $1 AND meal_date = $2 ORDER BY meal_time, id",
	SetWithinBudget:  "UPDATE meals SET within_budget = $2 WHERE id = $1",
	DistinctMealDays: "SELECT DISTINCT meal_date FROM meals WHERE user_id = $1 ORDER BY meal_date",

	InsertInvitation: `INSERT INTO invitations(email, token, status, created_at)
	                   VALUES($1, $2, $3, $4)
	                   RETURNING id`,
	GetInvitation:        "SELECT " + storage.InvitationColumns + " FROM invitations WHERE id = $1",
	GetInvitationByEmail: "SELECT " + storage.InvitationColumns + " FROM invitations WHERE email = $1",
	SetInvitationStatus:  "UPDATE invitations SET status = $2 WHERE id = $1",
	DeleteInvitation:     "DELETE FROM invitations WHERE id = $1",
}
