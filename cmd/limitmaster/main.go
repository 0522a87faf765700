package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"

	"github.com/your-org/limit-check-dispatcher/internal/accounts"
	"github.com/your-org/limit-check-dispatcher/internal/dispatch"
	"github.com/your-org/limit-check-dispatcher/internal/metrics"
	"github.com/your-org/limit-check-dispatcher/internal/paramstore"
	"github.com/your-org/limit-check-dispatcher/internal/settings"
)

var (
	start        = lambda.Start
	loadConfig   = config.LoadDefaultConfig
	loadSettings = settings.Load
)

type parameterStore interface {
	Get(ctx context.Context, name string) (string, error)
}

var (
	awsCfg   aws.Config
	params   parameterStore
	cwClient metrics.PutMetricDataAPI
	log      *zap.SugaredLogger

	// newInvoker returns a Lambda client bound to region.
	newInvoker = func(region string) dispatch.InvokeAPI {
		return lambdasvc.NewFromConfig(awsCfg, func(o *lambdasvc.Options) {
			o.Region = region
		})
	}
)

func handler(ctx context.Context, _ events.CloudWatchEvent) error {
	l := log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		l = l.With("aws_request_id", lc.AwsRequestID)
	}

	s, err := loadSettings()
	if err != nil {
		l.Errorw("load settings", "error", err)
		return err
	}

	raw := s.AccountList
	if s.AccountListParameter != "" {
		if raw, err = params.Get(ctx, s.AccountListParameter); err != nil {
			return fmt.Errorf("load account list: %w", err)
		}
	}
	ids := accounts.Parse(raw)

	res, err := dispatch.New(newInvoker(s.Region), s.InitiateCheckLambda, l).Dispatch(ctx, ids)
	if perr := metrics.NewPublisher(cwClient, s.MetricsNamespace).Dispatched(ctx, res.Dispatched); perr != nil {
		l.Warnw("publish metrics", "error", perr)
	}
	return err
}

func main() {
	cfg, err := loadConfig(context.Background())
	if err != nil {
		panic(err)
	}
	awsv2.AWSV2Instrumentor(&cfg.APIOptions)
	logger, _ := zap.NewProduction()
	log = logger.Sugar()
	awsCfg = cfg
	params = paramstore.New(ssm.NewFromConfig(cfg), log)
	cwClient = cloudwatch.NewFromConfig(cfg)
	start(handler)
}
