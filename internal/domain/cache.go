package domain

import "time"

// CacheEntry é um resultado serializado guardado por (usuário, chave)
type CacheEntry struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	CacheKey  string    `json:"cache_key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
