package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const publicCacheControl = "public, max-age=60"

func setPublicCache(c *gin.Context) {
	c.Header("Cache-Control", publicCacheControl)
}

// ListProducts 返回产品列表，支持 ?category= 过滤。
func (a *API) ListProducts(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Products(c.Request.Context(), a.requestLanguage(c), c.Query("category")))
}

// ShowProduct 返回产品详情。
func (a *API) ShowProduct(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Product(c.Request.Context(), a.requestLanguage(c), c.Param("slug")))
}

// ListPortfolios 返回项目案例列表，支持 ?category= 过滤。
func (a *API) ListPortfolios(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Portfolios(c.Request.Context(), a.requestLanguage(c), c.Query("category")))
}

// ShowPortfolio 返回项目案例详情。
func (a *API) ShowPortfolio(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Portfolio(c.Request.Context(), a.requestLanguage(c), c.Param("slug")))
}

// ListArticles 返回文章列表。
func (a *API) ListArticles(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Articles(c.Request.Context(), a.requestLanguage(c), c.Query("category")))
}

// ShowArticle 返回文章详情。
func (a *API) ShowArticle(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Article(c.Request.Context(), a.requestLanguage(c), c.Param("slug")))
}

func (a *API) ListAwards(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Awards(c.Request.Context(), a.requestLanguage(c)))
}

func (a *API) ListTestimonials(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.Testimonials(c.Request.Context(), a.requestLanguage(c)))
}

func (a *API) ListFAQs(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.FAQs(c.Request.Context(), a.requestLanguage(c)))
}

// ShowAbout 返回关于页内容。
func (a *API) ShowAbout(c *gin.Context) {
	setPublicCache(c)
	c.JSON(http.StatusOK, a.public.About(c.Request.Context(), a.requestLanguage(c)))
}
