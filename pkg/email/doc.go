// Package email sends transactional messages through Postmark, or writes
// them to a directory when no Postmark token is configured.
//
// NewFromConfig picks the implementation:
//
//	sender, err := email.NewFromConfig(cfg)
//	body, _ := email.Render(ctx, views.OrderConfirmation(order))
//	err = sender.Send(ctx, email.Message{To: order.Email, Subject: "Pedido confirmado", HTMLBody: body})
package email
