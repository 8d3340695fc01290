package ioc

import (
	"github.com/gotomicro/ego/server/egin"

	confirmationweb "club-notification/internal/handler/confirmation"
	notificationweb "club-notification/internal/handler/notification"
	"club-notification/internal/pkg/signlink"
	"club-notification/internal/service/confirmation"
	"club-notification/internal/service/gate"
)

func InitHTTPServer(dispatcher gate.Dispatcher, cfg NotificationConfig,
	confirmSvc confirmation.Service, verifier *signlink.Signer) *egin.Component {
	server := egin.Load("server.http").Build()
	notificationweb.NewHandler(dispatcher, cfg.Concurrency).PublicRoutes(server.Engine)
	confirmationweb.NewHandler(confirmSvc, verifier).PublicRoutes(server.Engine)
	return server
}
