package auth

import "context"

type ctxKey string

const ctxKeyTicket ctxKey = "ticket"

func WithTicket(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKeyTicket, c)
}

// TicketFromContext returns the verified ticket, or nil when none was sent.
func TicketFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(ctxKeyTicket); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}
