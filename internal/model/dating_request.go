package model

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestUnmatched RequestStatus = "unmatched"
)

// Active 为 true 时该对用户之间不能再发起新的请求
func (s RequestStatus) Active() bool {
	return s == RequestPending || s == RequestAccepted
}

// DatingRequest 约会请求，同时承载匹配关系（accepted 即为匹配）
type DatingRequest struct {
	UUIDBase
	SenderID    string        `gorm:"size:36;index;not null" json:"senderId"`
	Sender      *User         `gorm:"foreignKey:SenderID;references:ID" json:"-"`
	ReceiverID  string        `gorm:"size:36;index;not null" json:"receiverId"`
	Receiver    *User         `gorm:"foreignKey:ReceiverID;references:ID" json:"-"`
	Status      RequestStatus `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	AcceptedAt  *time.Time    `json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time    `json:"rejectedAt,omitempty"`
	UnmatchedAt *time.Time    `json:"unmatchedAt,omitempty"`
	// 活跃（pending/accepted）期间为 PairKey(sender, receiver)，终态时置 NULL。
	// 唯一索引保证同一对用户最多只有一条活跃请求。
	PairKey *string `gorm:"size:80;uniqueIndex" json:"-"`
}

func (DatingRequest) TableName() string {
	return "dating_requests"
}

// PairKey 与方向无关的用户对标识
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// Counterpart 返回请求中相对 userID 的另一方
func (r *DatingRequest) Counterpart(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}
