package product

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetProduct() {
	product := &models.Product{
		ID:        "geladeira",
		Name:      "Geladeira",
		Clues:     []string{"fica na cozinha", "é fria", "tem porta", "usa energia", "guarda comida"},
		SponsorID: "sponsor-1",
	}
	s.Require().NoError(s.repo.SaveProduct(s.ctx, &SaveProductInput{Product: product}))

	stored, err := s.repo.GetProduct(s.ctx, &GetProductInput{ProductID: "geladeira"})
	s.Require().NoError(err)
	s.Equal(product, stored)
}

func (s *RedisRepositoryTestSuite) TestGetProduct_NotFound() {
	_, err := s.repo.GetProduct(s.ctx, &GetProductInput{ProductID: "missing"})
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *RedisRepositoryTestSuite) TestListProducts() {
	for _, id := range []string{"tv", "fogao", "geladeira"} {
		s.Require().NoError(s.repo.SaveProduct(s.ctx, &SaveProductInput{Product: &models.Product{ID: id, Name: id}}))
	}

	products, err := s.repo.ListProducts(s.ctx, &ListProductsInput{})
	s.Require().NoError(err)
	s.Require().Len(products, 3)
	s.Equal("fogao", products[0].ID)
	s.Equal("tv", products[2].ID)
}
