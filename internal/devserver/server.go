package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bistro/internal/domain"
	"bistro/internal/push"
)

// Server is the development stand-in for the external orders backend: the
// REST routes the front-end consumes plus the websocket push endpoint. It
// is not the production service.
type Server struct {
	engine *gin.Engine
	store  *Store
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func NewServer() *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, store: NewStore(), hub: NewHub()}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	orders := s.engine.Group("/api/orders")
	{
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.PATCH(":id", s.updateOrder)
	}
	s.engine.GET("/ws", s.serveWS)
}

type createOrderReq struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []domain.OrderItem `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
}

func (s *Server) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List(c.Query("customerName")))
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.CustomerName == "" || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer name and items are required"})
		return
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
	}
	// total is computed by the client at submission time and trusted here
	o := domain.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
	}
	s.store.Create(&o)
	s.hub.Broadcast(roomAdmin, push.EventNewOrder, o)
	c.JSON(http.StatusCreated, o)
}

type updateOrderReq struct {
	Status domain.OrderStatus `json:"status"`
}

func (s *Server) updateOrder(c *gin.Context) {
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.store.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	s.hub.Broadcast(roomAdmin, push.EventOrderUpdated, o)
	s.hub.Broadcast(orderRoom(o.CustomerName), push.EventOrderUpdated, o)
	c.JSON(http.StatusOK, o)
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.hub.Serve(conn)
}

func mapErrorToStatus(err error) int {
	switch err {
	case ErrInvalidStatus:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
