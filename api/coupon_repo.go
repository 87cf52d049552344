package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"bookify/models"
)

// CouponRepository looks coupons up by code. Unlike the other repositories
// this one propagates errors: the checkout flow distinguishes "no such
// coupon" from transport failure.
type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type APICouponRepo struct {
	Client *Client
}

func NewCouponRepo(client *Client) *APICouponRepo {
	return &APICouponRepo{Client: client}
}

// ErrCouponNotFound reports an unknown coupon code.
var ErrCouponNotFound = errors.New("coupon not found")

func (r *APICouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	params := url.Values{"code": {code}}
	if err := r.Client.Fetch(ctx, "/coupons/find", params, &coupon); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("coupon lookup: %w", err)
	}
	return &coupon, nil
}
