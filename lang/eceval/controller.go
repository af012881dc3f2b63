// This file is part of python-sicp-chap5 - https://github.com/papamitra/python-sicp-chap5
//
// Copyright 2024 The python-sicp-chap5 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eceval

// Registers lists the registers used by Controller.
var Registers = []string{"exp", "env", "val", "proc", "argl", "continue", "unev"}

// Controller is the explicit-control evaluator. It evaluates the expression
// in register exp in the environment in register env and leaves the result in
// register val.
const Controller = `(
   (assign continue (label done))
 eval-dispatch
   (test (op self-evaluating?) (reg exp))
   (branch (label ev-self-eval))
   (test (op variable?) (reg exp))
   (branch (label ev-variable))
   (test (op quoted?) (reg exp))
   (branch (label ev-quoted))
   (test (op assignment?) (reg exp))
   (branch (label ev-assignment))
   (test (op definition?) (reg exp))
   (branch (label ev-definition))
   (test (op if?) (reg exp))
   (branch (label ev-if))
   (test (op cond?) (reg exp))
   (branch (label ev-cond))
   (test (op let?) (reg exp))
   (branch (label ev-let))
   (test (op lambda?) (reg exp))
   (branch (label ev-lambda))
   (test (op begin?) (reg exp))
   (branch (label ev-begin))
   (test (op application?) (reg exp))
   (branch (label ev-application))
   (goto (label unknown-expression-type))

 ev-self-eval
   (assign val (reg exp))
   (goto (reg continue))
 ev-variable
   (assign val (op lookup-variable-value) (reg exp) (reg env))
   (goto (reg continue))
 ev-quoted
   (assign val (op text-of-quotation) (reg exp))
   (goto (reg continue))
 ev-lambda
   (assign unev (op lambda-parameters) (reg exp))
   (assign exp (op lambda-body) (reg exp))
   (assign val (op make-procedure) (reg unev) (reg exp) (reg env))
   (goto (reg continue))

 ev-application
   (save continue)
   (save env)
   (assign unev (op operands) (reg exp))
   (save unev)
   (assign exp (op operator) (reg exp))
   (assign continue (label ev-appl-did-operator))
   (goto (label eval-dispatch))
 ev-appl-did-operator
   (restore unev)
   (restore env)
   (assign argl (op empty-arglist))
   (assign proc (reg val))
   (test (op no-operands?) (reg unev))
   (branch (label apply-dispatch))
   (save proc)
 ev-appl-operand-loop
   (save argl)
   (assign exp (op first-operand) (reg unev))
   (test (op last-operand?) (reg unev))
   (branch (label ev-appl-last-arg))
   (save env)
   (save unev)
   (assign continue (label ev-appl-accumulate-arg))
   (goto (label eval-dispatch))
 ev-appl-accumulate-arg
   (restore unev)
   (restore env)
   (restore argl)
   (assign argl (op adjoin-arg) (reg val) (reg argl))
   (assign unev (op rest-operands) (reg unev))
   (goto (label ev-appl-operand-loop))
 ev-appl-last-arg
   (assign continue (label ev-appl-accum-last-arg))
   (goto (label eval-dispatch))
 ev-appl-accum-last-arg
   (restore argl)
   (assign argl (op adjoin-arg) (reg val) (reg argl))
   (restore proc)
   (goto (label apply-dispatch))

 apply-dispatch
   (test (op primitive-procedure?) (reg proc))
   (branch (label primitive-apply))
   (test (op compound-procedure?) (reg proc))
   (branch (label compound-apply))
   (goto (label unknown-procedure-type))
 primitive-apply
   (assign val (op apply-primitive-procedure) (reg proc) (reg argl))
   (restore continue)
   (goto (reg continue))
 compound-apply
   (assign unev (op procedure-parameters) (reg proc))
   (assign env (op procedure-environment) (reg proc))
   (assign env (op extend-environment) (reg unev) (reg argl) (reg env))
   (assign unev (op procedure-body) (reg proc))
   (goto (label ev-sequence))

 ev-begin
   (assign unev (op begin-actions) (reg exp))
   (save continue)
   (goto (label ev-sequence))
 ev-sequence
   (assign exp (op first-exp) (reg unev))
   (test (op last-exp?) (reg unev))
   (branch (label ev-sequence-last-exp))
   (save unev)
   (save env)
   (assign continue (label ev-sequence-continue))
   (goto (label eval-dispatch))
 ev-sequence-continue
   (restore env)
   (restore unev)
   (assign unev (op rest-exps) (reg unev))
   (goto (label ev-sequence))
 ev-sequence-last-exp
   (restore continue)
   (goto (label eval-dispatch))

 ev-if
   (save exp)
   (save env)
   (save continue)
   (assign continue (label ev-if-decide))
   (assign exp (op if-predicate) (reg exp))
   (goto (label eval-dispatch))
 ev-if-decide
   (restore continue)
   (restore env)
   (restore exp)
   (test (op true?) (reg val))
   (branch (label ev-if-consequent))
 ev-if-alternative
   (assign exp (op if-alternative) (reg exp))
   (goto (label eval-dispatch))
 ev-if-consequent
   (assign exp (op if-consequent) (reg exp))
   (goto (label eval-dispatch))
 ev-cond
   (assign exp (op cond->if) (reg exp))
   (goto (label eval-dispatch))
 ev-let
   (assign exp (op let->combination) (reg exp))
   (goto (label eval-dispatch))

 ev-assignment
   (assign unev (op assignment-variable) (reg exp))
   (save unev)
   (assign exp (op assignment-value) (reg exp))
   (save env)
   (save continue)
   (assign continue (label ev-assignment-1))
   (goto (label eval-dispatch))
 ev-assignment-1
   (restore continue)
   (restore env)
   (restore unev)
   (perform (op set-variable-value!) (reg unev) (reg val) (reg env))
   (assign val (const ok))
   (goto (reg continue))
 ev-definition
   (assign unev (op definition-variable) (reg exp))
   (save unev)
   (assign exp (op definition-value) (reg exp))
   (save env)
   (save continue)
   (assign continue (label ev-definition-1))
   (goto (label eval-dispatch))
 ev-definition-1
   (restore continue)
   (restore env)
   (restore unev)
   (perform (op define-variable!) (reg unev) (reg val) (reg env))
   (assign val (const ok))
   (goto (reg continue))

 unknown-expression-type
   (perform (op signal-error) (const unknown-expression) (reg exp))
 unknown-procedure-type
   (perform (op signal-error) (const unknown-procedure) (reg proc))
 done)`
