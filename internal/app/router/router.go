package router

import (
	accounthandler "account_backend/internal/feature/account/transport/handler"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/session"

	"github.com/gin-gonic/gin"
)

func NewRouter(account *accounthandler.AccountHandler, store usecase.SessionStore) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/register", account.Register)
	// ログイン（セッション発行）
	r.POST("/login", account.Login)
	// ログアウトはセッションが無くても成功させる
	r.POST("/logout", account.Logout)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// session.AuthRequired() ミドルウェアを適用
	// → リクエストにセッションCookieが必要になる
	auth.Use(session.AuthRequired(store))
	{
		auth.GET("/profile", account.Profile)
		auth.PUT("/profile", account.UpdateProfile)
	}

	return r
}
