package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "risearc_session"
	cartKeyField = "cart_key"

	// CtxCartKey est la clé du contexte Gin portant la session panier.
	CtxCartKey = "cart_key"
)

var sessionStore *sessions.CookieStore

// InitSessionStore configure le cookie de session qui identifie le
// propriétaire (anonyme) du panier, indépendamment de tout compte.
func InitSessionStore() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   os.Getenv("COOKIE_SECURE") == "true",
		SameSite: http.SameSiteLaxMode,
	}
	sessionStore = store
}

// CartSession expose la clé de session panier dans le contexte.
// create=true (mutations) : la clé est créée paresseusement au premier
// ajout. create=false (lectures) : pas de clé ⇒ panier vide, on ne pose
// pas de cookie pour une simple consultation.
func CartSession(create bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := sessionStore.Get(c.Request, sessionName)

		key, _ := session.Values[cartKeyField].(string)
		if key == "" && create {
			key = uuid.NewString()
			session.Values[cartKeyField] = key
			if err := session.Save(c.Request, c.Writer); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
				c.Abort()
				return
			}
		}

		c.Set(CtxCartKey, key)
		c.Next()
	}
}
