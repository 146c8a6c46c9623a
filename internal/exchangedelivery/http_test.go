package exchangedelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func setupRouter(service Service) *gin.Engine {
	handler := NewHandler(service)

	router := gin.New()
	router.GET("/rates", handler.Table)
	router.GET("/rates/convert", handler.Convert)

	return router
}

func TestConvertAPI(t *testing.T) {
	testCases := []struct {
		name           string
		query          string
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:  "OK",
			query: "amount=100&from=EUR&to=BTC",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Convert(gomock.Any(), gomock.Any(), gomock.Eq("EUR"), gomock.Eq("BTC")).
					Times(1).
					Return(decimal.RequireFromString("0.002"), nil)
			},
			wantStatusCode: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var res struct {
					Data convertData `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &res))
				require.Equal(t, "EUR", res.Data.CurrencyFrom)
				require.Equal(t, "BTC", res.Data.CurrencyTo)
				require.True(t, res.Data.AmountTo.Equal(decimal.RequireFromString("0.002")))
			},
		},
		{
			name:  "UnsupportedCurrency",
			query: "amount=100&from=USD&to=BTC",
			buildStubs: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "UnparsableAmount",
			query: "amount=abc&from=EUR&to=BTC",
			buildStubs: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "RateUnavailable",
			query: "amount=3&from=ETH&to=SOL",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Convert(gomock.Any(), gomock.Any(), gomock.Eq("ETH"), gomock.Eq("SOL")).
					Times(1).
					Return(decimal.Zero, &domain.RateUnavailableError{From: "ETH", To: "SOL"})
			},
			wantStatusCode: http.StatusBadGateway,
			checkBody: func(t *testing.T, body []byte) {
				var res struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(body, &res))
				require.Contains(t, res.Error, "ETH/SOL")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			router := setupRouter(service)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/rates/convert?"+tc.query, nil)

			router.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.checkBody != nil {
				tc.checkBody(t, recorder.Body.Bytes())
			}
		})
	}
}

func TestTableAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rates := map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("0.0000212"),
		"ETH": decimal.RequireFromString("0.00031"),
	}

	service := NewMockService(ctrl)
	service.EXPECT().
		Table(gomock.Any(), gomock.Eq(currencypkg.Settlement)).
		Times(1).
		Return(rates, nil)

	router := setupRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/rates", nil)

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data tableData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.Equal(t, currencypkg.Settlement, res.Data.Base)
	require.Len(t, res.Data.Rates, 2)
}
