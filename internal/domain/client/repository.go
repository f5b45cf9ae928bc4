package client

import "context"

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (Client, error)
}
