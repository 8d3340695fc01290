package ioc

import (
	"database/sql"
	"sync"

	"github.com/ego-component/egorm"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"

	"club-notification/internal/repository/dao"
)

const dsn = "root:root@tcp(localhost:13316)/club_notification?collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=1s&readTimeout=3s&writeTimeout=3s&multiStatements=true&interpolateParams=true&charset=utf8mb4"

var (
	db         *egorm.Component
	initDBOnce sync.Once
)

// InitDBAndTables 测试共用一个连接，首次调用时建表
func InitDBAndTables() *egorm.Component {
	initDBOnce.Do(func() {
		sqlDB, err := sql.Open("mysql", dsn)
		if err != nil {
			panic(err)
		}
		waitFor("mysql", sqlDB.PingContext)
		_ = sqlDB.Close()

		econf.Set("mysql", map[string]any{
			"dsn":   dsn,
			"debug": true,
		})
		db = egorm.Load("mysql").Build()
		if err = dao.InitTables(db); err != nil {
			panic(err)
		}
	})
	return db
}
