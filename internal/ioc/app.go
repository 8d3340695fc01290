package ioc

import (
	"context"

	"github.com/gotomicro/ego/server/egin"
)

type Task interface {
	Start(ctx context.Context)
}

type App struct {
	HTTPServer *egin.Component
	Tasks      []Task
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		go func(t Task) {
			t.Start(ctx)
		}(t)
	}
}

// InitApp 按依赖顺序组装整个进程，必须在 ego.New() 加载配置之后调用
func InitApp() *App {
	cfg := InitNotificationConfig()
	confirmCfg := InitConfirmationConfig()

	db := InitDBAndTables()
	rdb := InitRedis()

	templates := InitTemplates()
	channels := InitChannelDispatcher(cfg, templates)
	svc := InitNotificationService(channels, templates, cfg)

	trigger, source := InitQueue(cfg.Queue)
	dispatcher := InitGate(cfg, trigger, svc, rdb)

	signer := InitLinkSigner(confirmCfg)
	confirmSvc := InitConfirmationService(db, rdb, dispatcher, signer, channels, cfg, confirmCfg)

	return &App{
		HTTPServer: InitHTTPServer(dispatcher, cfg, confirmSvc, signer),
		Tasks:      InitTasks(source, svc, cfg),
	}
}
