package handlers

import (
	"github.com/jmoiron/sqlx"

	"tienda3d/internal/config"
	"tienda3d/internal/repos"
	"tienda3d/internal/services"
)

type Deps struct {
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	BrandHandler     *BrandHandler
	AttributeHandler *AttributeHandler
	LookupHandler    *LookupHandler
	FeriaHandler     *FeriaHandler
	UserHandler      *UserHandler

	Users    *services.UserService
	Verifier *TokenVerifier
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	brandRepo := repos.NewBrandRepo(db)
	attrRepo := repos.NewAttributeRepo(db)
	lookupRepo := repos.NewLookupRepo(db)
	feriaRepo := repos.NewFeriaRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, catRepo, brandRepo, attrRepo)
	feriaSvc := services.NewFeriaService(feriaRepo, cfg.ClampFeriaStock)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, UploadDir: cfg.UploadDir},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		BrandHandler:     &BrandHandler{Catalog: catalogSvc},
		AttributeHandler: &AttributeHandler{Catalog: catalogSvc},
		LookupHandler:    &LookupHandler{Lookups: lookupRepo},
		FeriaHandler:     &FeriaHandler{Ferias: feriaSvc},
		UserHandler:      &UserHandler{Users: userSvc},

		Users: userSvc,
		Verifier: &TokenVerifier{
			Secret:   cfg.AuthSecret,
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
		},
	}
}
