package model

import "time"

// PublicProfile 对外展示的用户资料，不含密码。
// Instagram 信息只对本人和已匹配用户可见。
type PublicProfile struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	ProfileName          string    `json:"profileName"`
	Bio                  string    `json:"bio"`
	Country              string    `json:"country"`
	ProfilePic           string    `json:"profilePic"`
	SwipeImages          []string  `json:"swipeImages"`
	InstagramUsername    string    `json:"instagramUsername,omitempty"`
	InstagramProfileLink string    `json:"instagramProfileLink,omitempty"`
	IsVerified           bool      `json:"isVerified"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func NewPublicProfile(u *User, revealContact bool) *PublicProfile {
	if u == nil {
		return nil
	}
	images := []string(u.SwipeImages)
	if images == nil {
		images = []string{}
	}
	p := &PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		ProfileName: u.ProfileName,
		Bio:         u.Bio,
		Country:     u.Country,
		ProfilePic:  u.ProfilePic,
		SwipeImages: images,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if revealContact {
		p.InstagramUsername = u.InstagramUsername
		p.InstagramProfileLink = u.InstagramProfileLink
	}
	return p
}

// RequestView 请求列表项，附带对方资料
type RequestView struct {
	ID          string         `json:"id"`
	SenderID    string         `json:"senderId"`
	ReceiverID  string         `json:"receiverId"`
	Status      RequestStatus  `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	AcceptedAt  *time.Time     `json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time     `json:"rejectedAt,omitempty"`
	UnmatchedAt *time.Time     `json:"unmatchedAt,omitempty"`
	Counterpart *PublicProfile `json:"counterpart,omitempty"`
}

func NewRequestView(r *DatingRequest, counterpart *User) RequestView {
	return RequestView{
		ID:          r.ID,
		SenderID:    r.SenderID,
		ReceiverID:  r.ReceiverID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		AcceptedAt:  r.AcceptedAt,
		RejectedAt:  r.RejectedAt,
		UnmatchedAt: r.UnmatchedAt,
		Counterpart: NewPublicProfile(counterpart, r.Status == RequestAccepted),
	}
}

// MatchView 匹配列表项
type MatchView struct {
	PublicProfile
	RequestID   string     `json:"requestId"`
	IsInitiator bool       `json:"isInitiator"`
	MatchedAt   *time.Time `json:"matchedAt,omitempty"`
	// 对方发来且未读的消息数
	UnreadCount int64 `json:"unreadCount"`
}
