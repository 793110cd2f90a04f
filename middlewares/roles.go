package middlewares

import (
	"net/http"

	"github.com/edumesh/Backend_ELearning/funct"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

func RolesMiddleware(roles []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, _ := services.NewClaimsFromContext(ctx)
		hasRole := funct.Some(roles, func(role string) bool {
			return role == claims.UserType
		})
		if !hasRole {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		ctx.Next()
	}
}
