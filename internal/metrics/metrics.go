package metrics

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// DispatchedMetric is the metric name for accepted invocations per run.
const DispatchedMetric = "AccountsDispatched"

// PutMetricDataAPI abstracts the CloudWatch PutMetricData operation.
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Publisher sends dispatch counters to CloudWatch. A nil Publisher is valid
// and publishes nothing.
type Publisher struct {
	cw        PutMetricDataAPI
	namespace string
}

// NewPublisher returns a Publisher for namespace, or nil when namespace is empty.
func NewPublisher(cw PutMetricDataAPI, namespace string) *Publisher {
	if namespace == "" {
		return nil
	}
	return &Publisher{cw: cw, namespace: namespace}
}

// Dispatched records n accepted invocations.
func (p *Publisher) Dispatched(ctx context.Context, n int) error {
	if p == nil {
		return nil
	}
	_, err := p.cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []cwtypes.MetricDatum{
			{MetricName: aws.String(DispatchedMetric), Value: aws.Float64(float64(n)), Unit: cwtypes.StandardUnitCount},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
