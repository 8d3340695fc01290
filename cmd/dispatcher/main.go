package main

import (
	"context"

	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server/egovernor"

	"club-notification/internal/ioc"
)

func main() {
	egoApp := ego.New()
	app := ioc.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartTasks(ctx)

	if err := egoApp.Serve(
		egovernor.Load("server.governor").Build(),
		app.HTTPServer,
	).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
