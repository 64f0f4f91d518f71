package session

import "github.com/gofiber/fiber/v2"

// MergeViewContext merges the current session into template data so
// every view re-derives its rendering from the store: templates see
// `authenticated` and, when present, `user`. Values already in data
// win, letting a handler override for a specific render.
func MergeViewContext(store *Store, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	state := store.Current()

	if _, ok := data["authenticated"]; !ok {
		data["authenticated"] = state.IsAuthenticated()
	}

	if _, ok := data["user"]; !ok {
		if user, present := state.User(); present {
			data["user"] = user
		}
	}

	return data
}
