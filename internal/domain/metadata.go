package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DetailKind tags the type-specific part of a notification's metadata.
type DetailKind string

const (
	DetailComment       DetailKind = "comment"
	DetailClaim         DetailKind = "claim"
	DetailClaimResponse DetailKind = "claim_response"
	DetailHandoff       DetailKind = "handoff"
	DetailResource      DetailKind = "resource"
	DetailSchedule      DetailKind = "schedule"
	DetailMessage       DetailKind = "message"
	DetailShoutout      DetailKind = "shoutout"
	DetailMembership    DetailKind = "membership"
	DetailTrustLevel    DetailKind = "trust_level"
)

// Detail is one variant of the metadata union.
type Detail interface {
	Kind() DetailKind
}

type CommentMetadata struct {
	Excerpt string `json:"excerpt"`
}

type ClaimMetadata struct {
	ResourceTitle string  `json:"title,omitempty"`
	RequestText   *string `json:"request_text,omitempty"`
}

type ClaimResponseMetadata struct {
	ResourceTitle string      `json:"title,omitempty"`
	Response      ClaimStatus `json:"response"`
}

type HandoffRole string

const (
	HandoffGiver    HandoffRole = "giver"
	HandoffReceiver HandoffRole = "receiver"
)

// HandoffMetadata records which half of the handoff the recipient still has
// to confirm.
type HandoffMetadata struct {
	ResourceTitle string      `json:"title,omitempty"`
	Role          HandoffRole `json:"role"`
	Completed     bool        `json:"completed"`
}

type ResourceMetadata struct {
	Title        string       `json:"title"`
	ResourceKind ResourceKind `json:"resource_kind"`
}

type ScheduleMetadata struct {
	Title string    `json:"title"`
	At    time.Time `json:"at"`
}

type MessageMetadata struct {
	Excerpt string `json:"excerpt"`
}

type ShoutoutMetadata struct {
	Message string `json:"message"`
}

type MembershipAction string

const (
	MembershipJoined MembershipAction = "joined"
	MembershipLeft   MembershipAction = "left"
)

type MembershipMetadata struct {
	Action MembershipAction `json:"action"`
}

type TrustLevelMetadata struct {
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

func (CommentMetadata) Kind() DetailKind       { return DetailComment }
func (ClaimMetadata) Kind() DetailKind         { return DetailClaim }
func (ClaimResponseMetadata) Kind() DetailKind { return DetailClaimResponse }
func (HandoffMetadata) Kind() DetailKind       { return DetailHandoff }
func (ResourceMetadata) Kind() DetailKind      { return DetailResource }
func (ScheduleMetadata) Kind() DetailKind      { return DetailSchedule }
func (MessageMetadata) Kind() DetailKind       { return DetailMessage }
func (ShoutoutMetadata) Kind() DetailKind      { return DetailShoutout }
func (MembershipMetadata) Kind() DetailKind    { return DetailMembership }
func (TrustLevelMetadata) Kind() DetailKind    { return DetailTrustLevel }

// Metadata is the persisted notification metadata: actor display fields plus
// one Detail variant. It serializes to a flat JSON object carrying a "kind"
// discriminator so rows decode without knowing the notification type.
type Metadata struct {
	ActorName      string
	ActorAvatarURL *string
	Detail         Detail
}

// Flatten returns the JSON object form of m.
func (m Metadata) Flatten() (map[string]any, error) {
	out := map[string]any{}
	if m.Detail != nil {
		raw, err := json.Marshal(m.Detail)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		out["kind"] = string(m.Detail.Kind())
	}
	if m.ActorName != "" {
		out["actor_name"] = m.ActorName
	}
	if m.ActorAvatarURL != nil {
		out["actor_avatar_url"] = *m.ActorAvatarURL
	}
	return out, nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	flat, err := m.Flatten()
	if err != nil {
		return nil, err
	}
	return json.Marshal(flat)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var head struct {
		Kind           DetailKind `json:"kind"`
		ActorName      string     `json:"actor_name"`
		ActorAvatarURL *string    `json:"actor_avatar_url"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	m.ActorName = head.ActorName
	m.ActorAvatarURL = head.ActorAvatarURL
	m.Detail = nil
	if head.Kind == "" {
		return nil
	}

	detail, err := decodeDetail(head.Kind, data)
	if err != nil {
		return err
	}
	m.Detail = detail
	return nil
}

func decodeDetail(kind DetailKind, data []byte) (Detail, error) {
	switch kind {
	case DetailComment:
		var d CommentMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailClaim:
		var d ClaimMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailClaimResponse:
		var d ClaimResponseMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailHandoff:
		var d HandoffMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailResource:
		var d ResourceMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailSchedule:
		var d ScheduleMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailMessage:
		var d MessageMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailShoutout:
		var d ShoutoutMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailMembership:
		var d MembershipMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	case DetailTrustLevel:
		var d TrustLevelMetadata
		err := json.Unmarshal(data, &d)
		return d, err
	}
	return nil, fmt.Errorf("unknown metadata kind %q", kind)
}

func (m Metadata) Value() (driver.Value, error) {
	return m.MarshalJSON()
}

func (m *Metadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("cannot scan %T into Metadata", src)
}
