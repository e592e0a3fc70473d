package models

// 회원 사용자 모델
type User struct {
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Profile      UserProfile `json:"profile"`
}

// 대시보드 표시용 사용자 프로필
type UserProfile struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
}
