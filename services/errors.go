package services

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidParams = errors.New("invalid parameters")
	ErrAlreadyExists = errors.New("record already exists")
	// ErrStoreUnavailable = Record Store อ่านไม่ได้ -> analytic ล้มทั้งก้อน ไม่คืนผลครึ่งเดียว
	ErrStoreUnavailable = errors.New("record store unavailable")
)
