package protocol

// Status is the online status shown for the connected user.
type Status string

const (
	StatusOnline    Status = "online"
	StatusDND       Status = "dnd"
	StatusIdle      Status = "idle"
	StatusInvisible Status = "invisible"
	StatusOffline   Status = "offline"
)

// ActivityType is the verb shown before an activity name.
type ActivityType uint8

const (
	ActivityPlaying ActivityType = iota
	ActivityStreaming
	ActivityListening
	ActivityWatching
	ActivityCustom
	ActivityCompeting
)

// Activity is one entry of a presence's activity list.
type Activity struct {
	Name  string       `json:"name"`
	Type  ActivityType `json:"type"`
	URL   string       `json:"url,omitempty"`
	State string       `json:"state,omitempty"`
}

// Presence is the snapshot sent on identify and on presence updates.
// An empty Status is sent as online.
type Presence struct {
	Status   Status
	Activity *Activity
}

type presencePayload struct {
	Status     Status     `json:"status"`
	Since      int64      `json:"since"`
	AFK        bool       `json:"afk"`
	Activities []Activity `json:"activities"`
}

func (p Presence) payload(since int64) presencePayload {
	status := p.Status
	if status == "" {
		status = StatusOnline
	}

	// always a list; the gateway rejects a null here
	activities := make([]Activity, 0, 1)
	if p.Activity != nil {
		activities = append(activities, *p.Activity)
	}

	return presencePayload{
		Status:     status,
		Since:      since,
		AFK:        false,
		Activities: activities,
	}
}
