package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// InvokeAPI abstracts the Lambda Invoke operation.
type InvokeAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Payload is the event sent to the initiate-check function.
type Payload struct {
	AccountID string `json:"AccountId"`
}

// Result describes a dispatch run.
type Result struct {
	// Dispatched counts the invocations accepted before the run ended.
	Dispatched int
}

// Dispatcher invokes a single function asynchronously once per account.
type Dispatcher struct {
	client   InvokeAPI
	function string
	log      *zap.SugaredLogger
}

// New creates a Dispatcher targeting function through client.
func New(client InvokeAPI, function string, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{client: client, function: function, log: log}
}

// Dispatch invokes the target function with an Event invocation for every
// account id, in order. The first failure stops the run; invocations already
// accepted are left running.
func (d *Dispatcher) Dispatch(ctx context.Context, accountIDs []string) (Result, error) {
	var res Result
	for i, id := range accountIDs {
		d.log.Infow("running as", "account_id", id)

		body, err := json.Marshal(Payload{AccountID: id})
		if err != nil {
			return res, &InvocationError{Index: i, AccountID: id, Err: fmt.Errorf("encode payload: %w", err)}
		}

		out, err := d.client.Invoke(ctx, &lambda.InvokeInput{
			FunctionName:   aws.String(d.function),
			InvocationType: types.InvocationTypeEvent,
			Payload:        body,
		})
		if err != nil {
			d.log.Errorw("invoke failed", "account_id", id, "code", errorCode(err), "error", err)
			return res, &InvocationError{Index: i, AccountID: id, Err: err}
		}
		res.Dispatched++

		reqID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
		d.log.Infow("invoked", "account_id", id, "status_code", out.StatusCode, "request_id", reqID)
	}
	return res, nil
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
