package domain

import "time"

// Credentials guarda a conta e o token de acesso do Meta Ads de um usuário.
// Existe no máximo um registro por usuário.
type Credentials struct {
	UserID      int       `json:"-"`
	AccountID   string    `json:"account_id"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CredentialsStatus é o que é devolvido ao cliente: o token nunca sai do servidor
type CredentialsStatus struct {
	AccountID string `json:"accountId"`
	HasToken  bool   `json:"hasToken"`
}

func (c *Credentials) Status() *CredentialsStatus {
	if c == nil {
		return nil
	}

	return &CredentialsStatus{
		AccountID: c.AccountID,
		HasToken:  c.AccessToken != "",
	}
}
