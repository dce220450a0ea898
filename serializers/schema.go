package serializers

import (
	// Go Internal Packages
	_ "embed"
	"fmt"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// PaymentSchema is the schema text registered with the schema registry. It must describe
// the same message as paymentFile below.
//
//go:embed payment.proto
var PaymentSchema string

const (
	paymentPackage = "payment"
	paymentMessage = "Payment"
)

// PaymentRecordName is the fully qualified record name used for subject naming.
const PaymentRecordName = paymentPackage + "." + paymentMessage

// Field numbers of payment.Payment.
const (
	fieldTransactionID protoreflect.FieldNumber = iota + 1
	fieldAmount
	fieldMethod
	fieldOrderID
	fieldTimestamp
)

var paymentFile = &descriptorpb.FileDescriptorProto{
	Name:    proto.String("payment.proto"),
	Package: proto.String(paymentPackage),
	Syntax:  proto.String("proto3"),
	EnumType: []*descriptorpb.EnumDescriptorProto{{
		Name: proto.String("PaymentMethod"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("CARD"), Number: proto.Int32(int32(models.Card))},
			{Name: proto.String("TRANSFER"), Number: proto.Int32(int32(models.Transfer))},
			{Name: proto.String("PAYPAL"), Number: proto.Int32(int32(models.PayPal))},
			{Name: proto.String("CRYPTO"), Number: proto.Int32(int32(models.Crypto))},
		},
	}},
	MessageType: []*descriptorpb.DescriptorProto{{
		Name: proto.String(paymentMessage),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("transaction_id", "transactionId", fieldTransactionID, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("amount", "amount", fieldAmount, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
			{
				Name:     proto.String("method"),
				JsonName: proto.String("method"),
				Number:   proto.Int32(int32(fieldMethod)),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
				TypeName: proto.String("." + paymentPackage + ".PaymentMethod"),
			},
			scalarField("order_id", "orderId", fieldOrderID, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("timestamp", "timestamp", fieldTimestamp, descriptorpb.FieldDescriptorProto_TYPE_INT64),
		},
	}},
}

func scalarField(name, jsonName string, num protoreflect.FieldNumber, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(int32(num)),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

// PaymentDescriptor returns the message descriptor of payment.Payment.
func PaymentDescriptor() (protoreflect.MessageDescriptor, error) {
	fd, err := protodesc.NewFile(paymentFile, new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("cannot build payment descriptor: %w", err)
	}
	md := fd.Messages().ByName(paymentMessage)
	if md == nil {
		return nil, fmt.Errorf("message %s missing from payment descriptor", PaymentRecordName)
	}
	return md, nil
}
