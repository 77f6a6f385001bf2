package server

// Server joins the entity-specific HTTP servers under one routing surface.
type Server struct {
	DealServer
	CheckoutServer
}

func NewServer(
	dealServer DealServer,
	checkoutServer CheckoutServer,
) Server {
	return Server{
		DealServer:     dealServer,
		CheckoutServer: checkoutServer,
	}
}
