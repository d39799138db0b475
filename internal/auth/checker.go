package auth

import "context"

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (*LoginSession, error)
}
