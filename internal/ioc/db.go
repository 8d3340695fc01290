package ioc

import (
	"github.com/ego-component/egorm"

	"club-notification/internal/repository/dao"
)

func InitDBAndTables() *egorm.Component {
	db := egorm.Load("mysql").Build()
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}
