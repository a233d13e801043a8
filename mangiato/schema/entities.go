package schema

// QuotedFields is the set of field names whose filter literals are compared
// as text. Every text field of a built-in entity is in this set.
func QuotedFields() map[string]struct{} {
	names := []string{
		"username", "first_name", "last_name", "date", "confirmed_on",
		"name", "description", "time", "email", "status",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Meals describes the meal records of one user.
func Meals() *Entity {
	e := newEntity("Meal", "meals",
		Field{Name: "meal_id", Column: "id", Kind: KindNumber},
		Field{Name: "user_id", Kind: KindNumber},
		Field{Name: "date", Column: "meal_date", Kind: KindText},
		Field{Name: "time", Column: "meal_time", Kind: KindText},
		Field{Name: "description", Kind: KindText},
		Field{Name: "calories", Kind: KindNumber},
		Field{Name: "calories_less_expected", Column: "within_budget", Kind: KindBool},
	)
	e.Sortable = []string{"meal_id", "date", "time", "description", "calories", "calories_less_expected"}
	e.SortAliases = map[string]string{"id": "meal_id"}
	e.DefaultSort = "id"
	return e
}

// Users describes registered accounts.
func Users() *Entity {
	e := newEntity("User", "users",
		Field{Name: "id", Kind: KindNumber},
		Field{Name: "username", Kind: KindText},
		Field{Name: "first_name", Kind: KindText},
		Field{Name: "last_name", Kind: KindText},
		Field{Name: "confirmed", Kind: KindBool},
		Field{Name: "confirmed_on", Kind: KindText},
		Field{Name: "attempts_login", Kind: KindNumber},
		Field{Name: "blocked", Kind: KindBool},
	)
	e.Sortable = []string{"id", "username", "first_name", "last_name", "confirmed", "confirmed_on", "attempts_login", "blocked"}
	e.DefaultSort = "id"
	return e
}

// Invitations describes pending and accepted invitations.
func Invitations() *Entity {
	e := newEntity("Invitation", "invitations",
		Field{Name: "id", Kind: KindNumber},
		Field{Name: "email", Kind: KindText},
		Field{Name: "status", Kind: KindText},
	)
	e.Sortable = []string{"id", "email", "status"}
	e.DefaultSort = "id"
	return e
}

// ByName returns a built-in entity by its lowercase plural or singular name.
func ByName(name string) (*Entity, bool) {
	switch name {
	case "meal", "meals":
		return Meals(), true
	case "user", "users":
		return Users(), true
	case "invitation", "invitations":
		return Invitations(), true
	}
	return nil, false
}
