package client

// Item is the normalized view-model shape shared by task and reward
// lists: flags coerced to booleans, point values under one name, and the
// assigned username joined in.
type Item struct {
	ID               uint64
	Title            string
	Description      string
	Points           int
	Completed        bool
	Redeemed         bool
	Daily            bool
	AssignedUserID   *uint64
	AssignedUsername string
}

// UserIndex maps user ids to usernames. It is rebuilt from a single
// users fetch alongside each list fetch, never patched incrementally: a
// create or delete reloads both users and items.
type UserIndex map[uint64]string

// BuildUserIndex builds the id-to-username lookup from a users fetch.
func BuildUserIndex(users []User) UserIndex {
	index := make(UserIndex, len(users))
	for _, user := range users {
		index[user.ID] = user.Username
	}
	return index
}

// NormalizeTasks shapes raw task records for display. Invalid entries
// are dropped, completed/daily become booleans, and rewardPoints becomes
// Points.
func NormalizeTasks(records []Record, users UserIndex) []Item {
	items := make([]Item, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		item := Item{
			ID:          asUint64(record["id"]),
			Title:       asString(record["title"]),
			Description: asString(record["description"]),
			Points:      asInt(record["rewardPoints"]),
			Completed:   asBool(record["completed"]),
			Daily:       asBool(record["daily"]),
		}
		attachAssignment(&item, record["assignedUserId"], users)
		items = append(items, item)
	}
	return items
}

// NormalizeRewards shapes raw reward records for display. Invalid
// entries are dropped, redeemed becomes a boolean, and price becomes
// Points.
func NormalizeRewards(records []Record, users UserIndex) []Item {
	items := make([]Item, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		item := Item{
			ID:          asUint64(record["id"]),
			Title:       asString(record["title"]),
			Description: asString(record["description"]),
			Points:      asInt(record["price"]),
			Redeemed:    asBool(record["redeemed"]),
		}
		attachAssignment(&item, record["assignedUserId"], users)
		items = append(items, item)
	}
	return items
}

// RemoveItem returns the list without the item of the given id, patching
// the in-memory view after a delete without a full reload.
func RemoveItem(items []Item, id uint64) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			result = append(result, item)
		}
	}
	return result
}

func attachAssignment(item *Item, raw any, users UserIndex) {
	if raw == nil {
		return
	}
	id := asUint64(raw)
	item.AssignedUserID = &id
	item.AssignedUsername = users[id]
}

// JSON numbers decode as float64; ints and uints appear when records are
// built in-process. Everything else coerces to the zero value.

func asUint64(value any) uint64 {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case uint64:
		return v
	default:
		return 0
	}
}

func asInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case uint64:
		return int(v)
	default:
		return 0
	}
}

func asBool(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}
