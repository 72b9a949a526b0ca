package models

// PublicEntry — запись в публичной выдаче.
type PublicEntry struct {
	EntryName            string        `json:"entryName"`
	MonthlyPaymentStatus MonthlyStatus `json:"monthlyPaymentStatus"`
}

// PublicGroup — группа в публичной выдаче.
type PublicGroup struct {
	GroupName string        `json:"groupName"`
	Entries   []PublicEntry `json:"entries"`
}

// PublicUserFees — агрегированное состояние взносов одного аккаунта,
// отдаваемое без аутентификации.
type PublicUserFees struct {
	UserID   string        `json:"userID"`
	UserName string        `json:"userName"`
	Groups   []PublicGroup `json:"groups"`
}
